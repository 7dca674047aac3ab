package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/testutil"
)

func TestImport_TextEndToEnd(t *testing.T) {
	st := seededStore(t)
	svc := services.NewImportService(st, &sync.Mutex{})
	ctx := context.Background()

	res, err := svc.Import(ctx, "g1", "", "# Math\nAlgebra Basics\n# Science\nAtoms", false)
	require.NoError(t, err)
	assert.Equal(t, "plain-text", res.Kind)
	assert.Equal(t, 2, res.Imported)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)

	g := snap.Grades[0]
	require.Len(t, g.Subjects, 2, "Science created, Math reused")

	math := g.Subjects[0]
	require.Len(t, math.Rows, 3)
	assert.Equal(t, "Algebra Basics", math.Rows[2].Topic)

	science := g.Subjects[1]
	assert.Equal(t, "Science", science.Name)
	require.Len(t, science.Rows, 1)
	assert.Equal(t, "Atoms", science.Rows[0].Topic)
}

func TestImport_MarkerOnlySubjectPersists(t *testing.T) {
	st := seededStore(t)
	svc := services.NewImportService(st, &sync.Mutex{})
	ctx := context.Background()

	res, err := svc.Import(ctx, "g1", "", "# History", false)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	g := snap.Grades[0]
	require.Len(t, g.Subjects, 2)
	assert.Equal(t, "History", g.Subjects[1].Name)
}

func TestImport_TextWithoutTargetIsANoOp(t *testing.T) {
	st := testutil.NewTestStore(t)
	snap := models.DefaultSnapshot()
	snap.Grades = []models.Grade{{ID: "g1", Name: "Grade 6", Subjects: []models.Subject{}}}
	require.NoError(t, st.SaveSnapshot(context.Background(), snap))

	svc := services.NewImportService(st, &sync.Mutex{})
	ctx := context.Background()

	res, err := svc.Import(ctx, "g1", "", "Algebra Basics", false)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)

	after, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, after.Grades[0].Subjects, "orphan lines create nothing")
}

func TestImport_FullHierarchyNeedsConfirmation(t *testing.T) {
	st := seededStore(t)
	svc := services.NewImportService(st, &sync.Mutex{})
	ctx := context.Background()

	backup := `[{"id": "g9", "name": "Restored", "subjects": [{"id": "s9", "name": "Art", "rows": [{"id": "r9", "topic": "Color"}]}]}]`

	res, err := svc.Import(ctx, "g1", "", backup, false)
	require.NoError(t, err)
	assert.True(t, res.RequiresConfirm)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g1", snap.Grades[0].ID, "nothing applied before confirmation")

	res, err = svc.Import(ctx, "g1", "", backup, true)
	require.NoError(t, err)
	assert.False(t, res.RequiresConfirm)
	assert.Equal(t, "g9", res.ActiveGradeID)
	assert.Equal(t, 1, res.Imported)

	snap, err = st.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Grades, 1)
	assert.Equal(t, "Restored", snap.Grades[0].Name)
}

func TestImport_SubjectList(t *testing.T) {
	st := seededStore(t)
	svc := services.NewImportService(st, &sync.Mutex{})
	ctx := context.Background()

	res, err := svc.Import(ctx, "g1", "", `[{"name": "Math", "rows": [{"topic": "Ratios"}]}, {"name": "History", "rows": []}]`, false)
	require.NoError(t, err)
	assert.Equal(t, "subject-list", res.Kind)
	assert.Equal(t, 1, res.Imported)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)

	g := snap.Grades[0]
	require.Len(t, g.Subjects, 2)
	assert.Len(t, g.Subjects[0].Rows, 3, "rows appended to the existing Math subject")
	assert.Equal(t, "History", g.Subjects[1].Name)
}

func TestImport_Unrecognized(t *testing.T) {
	st := seededStore(t)
	svc := services.NewImportService(st, &sync.Mutex{})

	_, err := svc.Import(context.Background(), "g1", "", `{"not": "a known shape"}`, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORMAT_MISMATCH")
}
