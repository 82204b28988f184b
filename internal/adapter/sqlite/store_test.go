package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/abaevdict/internal/adapter/sqlschema"
	"github.com/heartmarshall/abaevdict/internal/domain"
)

func strp(s string) *string { return &s }

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "abaev.db"), "|")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleTables(t *testing.T) *domain.Tables {
	t.Helper()
	variant := domain.FormRelVariant
	tables := domain.NewTables()
	require.NoError(t, tables.Entries.AddAll([]domain.Entry{
		{ID: "entry_sub", Lemma: "kærcgænæg", Lang: strp("os"), MainEntry: strp("entry_kærc")},
		{ID: "entry_kærc", Lemma: "kærc", Lang: strp("os")},
	}))
	require.NoError(t, tables.Forms.AddAll([]domain.Form{
		{ID: "f2", EntryID: "entry_kærc", Orth: "kærcæ", Lang: strp("os"), RelOf: strp("f1"), RelType: &variant},
		{ID: "f1", EntryID: "entry_kærc", Orth: "kærc", Lang: strp("os")},
	}))
	require.NoError(t, tables.SenseGroups.Add(domain.SenseGroup{ID: "sg", EntryID: "entry_kærc"}))
	require.NoError(t, tables.Senses.Add(domain.Sense{ID: "s", EntryID: "entry_kærc", DescriptionRu: "шуба", SenseGroup: strp("sg"), IsDef: true}))
	require.NoError(t, tables.ExampleGroups.Add(domain.ExampleGroup{ID: "eg", EntryID: "entry_sub"}))
	require.NoError(t, tables.Examples.Add(domain.Example{ID: "ex", EntryID: "entry_sub", ExampleGroup: "eg", Text: "kærc"}))
	require.NoError(t, tables.Mentioneds.Add(domain.Mentioned{
		ID: "m", XMLIDs: []string{"m", "m_en"}, EntryID: "entry_kærc", Langs: []string{"sa"}, Forms: []string{"kurk"},
	}))
	return tables
}

func load(ctx context.Context, store *Store, tables *domain.Tables, langs domain.Languages) error {
	return store.RunInTx(ctx, func(ctx context.Context) error {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		for _, b := range sqlschema.Batches(tables, langs) {
			if _, err := store.InsertRows(ctx, b.Table, b.Columns, b.Rows); err != nil {
				return err
			}
		}
		run := domain.NewBuildRun("corpus", time.Now())
		run.FinishedAt = time.Now()
		run.Counts = tables.Counts()
		return store.RecordRun(ctx, run)
	})
}

func TestStore_Load(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	lat := 43.0
	langs := domain.NewLanguages([]domain.Language{{Code: "os", NameEn: "Ossetic", Latitude: &lat}, {Code: "sa"}})
	require.NoError(t, load(ctx, store, sampleTables(t), langs))

	want := map[string]int{
		sqlschema.Languages: 2, sqlschema.Entries: 2, sqlschema.Forms: 2, sqlschema.Senses: 1,
		sqlschema.SenseGroups: 1, sqlschema.Examples: 1, sqlschema.ExampleGroups: 1,
		sqlschema.Mentioneds: 1, sqlschema.BuildRuns: 1,
	}
	for table, n := range want {
		got, err := store.CountRows(ctx, table)
		require.NoError(t, err, table)
		assert.Equal(t, n, got, table)
	}

	var xmlIDs, glossEn string
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT xml_id, gloss_en FROM mentioneds WHERE db_id = 'm'`).Scan(&xmlIDs, &glossEn))
	assert.Equal(t, "m|m_en", xmlIDs)
	assert.Equal(t, "", glossEn)

	var position int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT position FROM entries WHERE db_id = 'entry_kærc'`).Scan(&position))
	assert.Equal(t, 1, position)
}

func TestStore_ReloadReplaces(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, load(ctx, store, sampleTables(t), domain.Languages{}))
	require.NoError(t, load(ctx, store, sampleTables(t), domain.Languages{}))

	n, err := store.CountRows(ctx, sqlschema.Entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	runs, err := store.CountRows(ctx, sqlschema.BuildRuns)
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestStore_LanguagesUpsert(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	cols := sqlschema.Columns[sqlschema.Languages]

	_, err := store.InsertRows(ctx, sqlschema.Languages, cols, [][]any{{"os", "", "", "", "", nil, nil}})
	require.NoError(t, err)
	_, err = store.InsertRows(ctx, sqlschema.Languages, cols, [][]any{{"os", "osse1243", "", "Ossetic", "", nil, nil}})
	require.NoError(t, err)

	var name string
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT name_en FROM languages WHERE code = 'os'`).Scan(&name))
	assert.Equal(t, "Ossetic", name)
}

func TestStore_DuplicateID(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	err := store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := store.InsertRows(ctx, sqlschema.Entries, sqlschema.Columns[sqlschema.Entries], [][]any{
			{"entry_a", "a", nil, nil, nil, 0},
			{"entry_a", "a", nil, nil, nil, 1},
		})
		return err
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateID), "got %v", err)

	n, err := store.CountRows(ctx, sqlschema.Entries)
	require.NoError(t, err)
	assert.Zero(t, n, "failed transaction leaves no rows")
}

func TestStore_DanglingReference(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.InsertRows(ctx, sqlschema.SenseGroups, sqlschema.Columns[sqlschema.SenseGroups], [][]any{
		{"sg", "entry_missing", nil},
	})
	assert.True(t, errors.Is(err, domain.ErrDanglingCrossReference), "got %v", err)

	// Deferred references are checked when the transaction commits.
	err = store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := store.InsertRows(ctx, sqlschema.Entries, sqlschema.Columns[sqlschema.Entries], [][]any{
			{"entry_sub", "a", nil, nil, strp("entry_missing"), 0},
		})
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrDanglingCrossReference), "got %v", err)
}

func TestStore_ListItemWithDelimiter(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	tables := domain.NewTables()
	require.NoError(t, tables.Entries.Add(domain.Entry{ID: "entry_a", Lemma: "a", Lang: strp("os")}))
	require.NoError(t, tables.Mentioneds.Add(domain.Mentioned{
		ID: "m", XMLIDs: []string{"m"}, EntryID: "entry_a", Forms: []string{"x"}, GlossEn: []string{"either|or"},
	}))

	err := load(ctx, store, tables, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "gloss_en")

	n, err := store.CountRows(ctx, sqlschema.Entries)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_CountRowsUnknownTable(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	_, err := store.CountRows(context.Background(), "sqlite_master; DROP TABLE entries")
	assert.Error(t, err)
}

func TestWithPragmas(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withPragmas("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withPragmas("file:a.db?mode=rwc"))
}
