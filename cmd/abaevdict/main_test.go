package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text><body>
<entry xml:id="entry_%[1]s" xml:lang="os"><form type="lemma" xml:id="entry_%[1]s_f"><orth>%[1]s</orth></form>
<etym xml:lang="ru"><mentioned xml:id="entry_%[1]s_m1" xml:lang="sa"><w>kṛtti</w><gloss>шкура</gloss></mentioned></etym>
</entry>
</body></text></TEI>`

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	corpusDir := filepath.Join(root, "corpus")
	require.NoError(t, os.Mkdir(corpusDir, 0o755))
	for _, lemma := range []string{"kærc", "ard"} {
		path := filepath.Join(corpusDir, "abaev_"+lemma+".xml")
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testDoc, lemma)), 0o644))
	}

	langs := "code,glottolog,ru,en,comment,lat,long\nos,osse1243,,Ossetic,,43,44\nsa,sans1269,,Sanskrit,,20,77\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "languages.csv"), []byte(langs), 0o644))

	cfg := fmt.Sprintf(`corpus:
  dir: %[1]s/corpus
  languages_path: %[1]s/languages.csv
output:
  dir: %[1]s/csv
database:
  driver: sqlite
  dsn: %[1]s/abaev.db
log:
  level: error
`, root)
	path := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildAndLoad(t *testing.T) {
	cfgPath := writeProject(t)

	out, err := run(t, "build", "--load", "--config", cfgPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "load")
	assert.Contains(t, out, "entries.csv")

	root := filepath.Dir(cfgPath)
	assert.FileExists(t, filepath.Join(root, "csv", "manifest.yaml"))
	assert.FileExists(t, filepath.Join(root, "abaev.db"))

	// Loading the same tables again needs database.replace.
	_, err = run(t, "load", "--config", cfgPath)
	assert.Error(t, err)
}

func TestMap(t *testing.T) {
	cfgPath := writeProject(t)

	_, err := run(t, "build", "--config", cfgPath)
	require.NoError(t, err)

	out, err := run(t, "map", "--entry", "kærc", "--config", cfgPath)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "sa", fc.Features[1].Properties["language"])
	assert.Equal(t, "kṛtti", fc.Features[1].Properties["form"])

	_, err = run(t, "map", "--entry", "missing", "--config", cfgPath)
	assert.Error(t, err)
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "build", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
