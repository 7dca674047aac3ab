package merge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/merge"
	"github.com/islandlog/islandlog/internal/models"
)

func hierarchy() []models.Grade {
	return []models.Grade{
		{
			ID:   "g1",
			Name: "Grade 6",
			Subjects: []models.Subject{
				{ID: "s1", Name: "Math", Rows: []models.Row{{ID: "r1", Topic: "Fractions"}}},
				{ID: "s2", Name: "Science", Rows: []models.Row{}},
			},
		},
		{
			ID:   "g2",
			Name: "Grade 7",
			Subjects: []models.Subject{
				{ID: "s3", Name: "Math", Rows: []models.Row{{ID: "r2", Topic: "Algebra"}}},
			},
		},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want merge.Kind
	}{
		{name: "full hierarchy with subjects", text: `[{"id": "g1", "name": "G", "subjects": []}]`, want: merge.FullHierarchy},
		{name: "grade shaped without rows", text: `[{"id": "g1", "name": "G"}]`, want: merge.FullHierarchy},
		{name: "subject list", text: `[{"name": "Math", "rows": []}]`, want: merge.SubjectList},
		{name: "plain text", text: "# Math\nAlgebra Basics", want: merge.PlainText},
		{name: "single topic line", text: "Fractions", want: merge.PlainText},
		{name: "json object", text: `{"name": "Math"}`, want: merge.Unrecognized},
		{name: "json array of numbers", text: `[1, 2, 3]`, want: merge.Unrecognized},
		{name: "empty array", text: `[]`, want: merge.Unrecognized},
		{name: "array of unshaped objects", text: `[{"foo": 1}]`, want: merge.Unrecognized},
		{name: "empty text", text: "   ", want: merge.Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge.Classify(tt.text).Kind)
		})
	}
}

func TestClassify_RowsAndIdIsSubjectNotHierarchy(t *testing.T) {
	// A subject that happens to carry an id must not be mistaken for a
	// grade: the rows key settles it.
	p := merge.Classify(`[{"id": "s9", "name": "Math", "rows": []}]`)
	assert.Equal(t, merge.SubjectList, p.Kind)
}

func TestReplaceAll(t *testing.T) {
	clean, active := merge.ReplaceAll(hierarchy())
	assert.Equal(t, "g1", active)
	assert.Len(t, clean, 2)

	t.Run("empty payload falls back to starter data", func(t *testing.T) {
		clean, active := merge.ReplaceAll(nil)
		require.NotEmpty(t, clean)
		assert.Equal(t, clean[0].ID, active)
	})
}

func TestMergeSubjects(t *testing.T) {
	incoming := []models.Subject{
		{ID: "sx", Name: "Math", Rows: []models.Row{{ID: "rx", Topic: "Fractions"}}},
		{ID: "sy", Name: "History", Rows: []models.Row{{ID: "ry", Topic: "Romans"}}},
	}

	before := hierarchy()
	beforeJSON, _ := json.Marshal(before[1])

	out, err := merge.MergeSubjects(before, "g1", incoming)
	require.NoError(t, err)

	g := out[0]
	require.Len(t, g.Subjects, 3, "matched subject merged, new subject appended")

	math := g.Subjects[0]
	assert.Equal(t, "s1", math.ID, "existing subject identity kept")
	require.Len(t, math.Rows, 2, "incoming rows appended even when topics repeat")
	assert.Equal(t, "Fractions", math.Rows[0].Topic)
	assert.Equal(t, "Fractions", math.Rows[1].Topic)

	assert.Equal(t, "History", g.Subjects[2].Name)

	afterJSON, _ := json.Marshal(out[1])
	assert.JSONEq(t, string(beforeJSON), string(afterJSON), "other grades untouched")
}

func TestMergeSubjects_CaseSensitiveNames(t *testing.T) {
	out, err := merge.MergeSubjects(hierarchy(), "g1", []models.Subject{
		{ID: "sx", Name: "math", Rows: []models.Row{}},
	})
	require.NoError(t, err)
	assert.Len(t, out[0].Subjects, 3, "different case is a different subject")
}

func TestMergeSubjects_UnknownGrade(t *testing.T) {
	_, err := merge.MergeSubjects(hierarchy(), "missing", nil)
	assert.Error(t, err)
}

func TestMergeSubjects_DoesNotMutateInput(t *testing.T) {
	before := hierarchy()
	snapshot, _ := json.Marshal(before)

	_, err := merge.MergeSubjects(before, "g1", []models.Subject{
		{Name: "Math", Rows: []models.Row{{ID: "rz", Topic: "Decimals"}}},
	})
	require.NoError(t, err)

	after, _ := json.Marshal(before)
	assert.JSONEq(t, string(snapshot), string(after))
}

func TestImportText(t *testing.T) {
	t.Run("markers create and fill subjects", func(t *testing.T) {
		out, count, err := merge.ImportText(hierarchy(), "g1", "", "# Math\nAlgebra Basics\n# Science\nAtoms")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		g := out[0]
		require.Len(t, g.Subjects, 2, "both markers matched existing subjects")
		require.Len(t, g.Subjects[0].Rows, 2)
		assert.Equal(t, "Algebra Basics", g.Subjects[0].Rows[1].Topic)
		require.Len(t, g.Subjects[1].Rows, 1)
		assert.Equal(t, "Atoms", g.Subjects[1].Rows[0].Topic)
	})

	t.Run("unknown marker creates the subject", func(t *testing.T) {
		out, count, err := merge.ImportText(hierarchy(), "g1", "", "# History\nRomans\nGreeks")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		g := out[0]
		require.Len(t, g.Subjects, 3)
		assert.Equal(t, "History", g.Subjects[2].Name)
		assert.Len(t, g.Subjects[2].Rows, 2)
	})

	t.Run("lines before a marker use the selected subject", func(t *testing.T) {
		out, count, err := merge.ImportText(hierarchy(), "g1", "s2", "Photosynthesis")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "Photosynthesis", out[0].Subjects[1].Rows[0].Topic)
	})

	t.Run("no selection falls back to the first subject", func(t *testing.T) {
		out, count, err := merge.ImportText(hierarchy(), "g1", "", "Decimals")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "Decimals", out[0].Subjects[0].Rows[1].Topic)
	})

	t.Run("imported rows start with defaults", func(t *testing.T) {
		out, _, err := merge.ImportText(hierarchy(), "g1", "", "Decimals")
		require.NoError(t, err)
		r := out[0].Subjects[0].Rows[1]
		assert.NotEmpty(t, r.ID)
		assert.Empty(t, r.Score1)
		assert.False(t, r.Practice1)
	})

	t.Run("no subjects and no marker imports nothing", func(t *testing.T) {
		before := []models.Grade{{ID: "g1", Name: "Grade 6", Subjects: []models.Subject{}}}
		out, count, err := merge.ImportText(before, "g1", "", "Algebra Basics\nAtoms")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, out[0].Subjects, "no subject is invented for orphan lines")
	})

	t.Run("marker with no content lines still creates the subject", func(t *testing.T) {
		out, count, err := merge.ImportText(hierarchy(), "g1", "", "# History")
		require.NoError(t, err)
		assert.Zero(t, count)
		require.Len(t, out[0].Subjects, 3)
		assert.Equal(t, "History", out[0].Subjects[2].Name)
		assert.Empty(t, out[0].Subjects[2].Rows)
	})

	t.Run("blank input is a no-op", func(t *testing.T) {
		before := hierarchy()
		out, count, err := merge.ImportText(before, "g1", "", "\n  \n")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Equal(t, before, out)
	})

	t.Run("unknown grade", func(t *testing.T) {
		_, _, err := merge.ImportText(hierarchy(), "missing", "", "Fractions")
		assert.Error(t, err)
	})
}

func localSnapshot() models.Snapshot {
	snap := models.DefaultSnapshot()
	snap.Grades = hierarchy()
	snap.Settings.RemoteURL = "https://local.example/exec"
	snap.Settings.APIKey = "local-key"
	snap.Settings.PassingScore = 80
	return snap
}

func TestApplyRemote_NullMeansNoRemoteData(t *testing.T) {
	local := localSnapshot()

	for _, data := range []json.RawMessage{nil, json.RawMessage("null")} {
		got, applied, err := merge.ApplyRemote(local, data)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, local, got)
	}
}

func TestApplyRemote_InvalidGradesRejected(t *testing.T) {
	local := localSnapshot()

	tests := []struct {
		name string
		data string
	}{
		{name: "not an object", data: `[1, 2]`},
		{name: "grades missing", data: `{"userData": {"exp": 5}}`},
		{name: "grades not an array", data: `{"grades": {"id": "g1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied, err := merge.ApplyRemote(local, json.RawMessage(tt.data))
			assert.Error(t, err)
			assert.False(t, applied)
			assert.Equal(t, local, got, "nothing applied on rejection")
		})
	}
}

func TestApplyRemote_MergesRemoteState(t *testing.T) {
	local := localSnapshot()

	remote := `{
		"grades": [{"id": "g9", "name": "Remote Grade", "subjects": []}],
		"userData": {"exp": 500, "coins": 70, "logs": {}},
		"settings": {"passingScore": 90, "remoteUrl": "https://stale.example/exec", "apiKey": "stale"},
		"targetDate": "2024-12-31"
	}`

	got, applied, err := merge.ApplyRemote(local, json.RawMessage(remote))
	require.NoError(t, err)
	assert.True(t, applied)

	require.Len(t, got.Grades, 1)
	assert.Equal(t, "Remote Grade", got.Grades[0].Name)
	assert.Equal(t, 500, got.UserData.Exp)
	assert.Equal(t, "2024-12-31", got.TargetDate)

	assert.Equal(t, 90, got.Settings.PassingScore, "plain settings take the remote value")
	assert.Equal(t, "https://local.example/exec", got.Settings.RemoteURL, "credentials stay local")
	assert.Equal(t, "local-key", got.Settings.APIKey)
}

func TestApplyRemote_RemoteCredentialsFillLocalGaps(t *testing.T) {
	local := localSnapshot()
	local.Settings.APIKey = ""

	remote := `{"grades": [], "settings": {"apiKey": "remote-key"}}`

	got, applied, err := merge.ApplyRemote(local, json.RawMessage(remote))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "remote-key", got.Settings.APIKey)
}
