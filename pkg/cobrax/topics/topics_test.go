// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory fs.FS
// PURPOSE: Test topic discovery, lookup and the help command integration

package topics_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/akabei/pkg/cobrax/topics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"manifest.md":        {Data: []byte("# Manifests\n\nPackage manifests")},
		"option-dry-run.txt": {Data: []byte("Dry run help")},
		"state.txxt":         {Data: []byte("State file")},
		"ignore.json":        {Data: []byte("{}")},
		"advanced/phases.md": {Data: []byte("Phase order")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := topics.New(topicFS())
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"manifest", "option-dry-run", "phases"}, tm.ListTopics())

		topic, ok := tm.GetTopic("manifest")
		require.True(t, ok)
		assert.Equal(t, "# Manifests\n\nPackage manifests", topic.Content)
		assert.Equal(t, "manifest.md", topic.FilePath)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := topics.NewWithOptions(topicFS(), topics.Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"state"}, tm.ListTopics())
	})

	t.Run("nil file system has no topics", func(t *testing.T) {
		tm := topics.New(nil)
		require.NoError(t, tm.Scan())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm := topics.New(topicFS())
	require.NoError(t, tm.Scan())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"manifest", "manifest", true},
		{"option-dry-run", "option-dry-run", true},
		{"dry-run", "option-dry-run", true},
		{"--dry-run", "option-dry-run", true},
		{"-dry-run", "option-dry-run", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestPrintTopics(t *testing.T) {
	tm := topics.New(topicFS())
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.PrintTopics(&buf, "akabei")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  manifest\n  phases\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "Use 'akabei help <topic>'")
}

type upper struct{}

func (upper) Render(content, format string) string { return strings.ToUpper(content) }

func newRoot(t *testing.T, opts topics.Options) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List packages",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	_, err := topics.InitializeWithOptions(root, topicFS(), opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestHelpCommand_Topic(t *testing.T) {
	root, buf := newRoot(t, topics.Options{Renderer: upper{}})

	root.SetArgs([]string{"help", "dry-run"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "DRY RUN HELP", buf.String())
}

func TestHelpCommand_TopicsIndex(t *testing.T) {
	root, buf := newRoot(t, topics.Options{})

	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "Available help topics:")
}

func TestHelpCommand_FallsBackToCommandHelp(t *testing.T) {
	root, buf := newRoot(t, topics.Options{})

	root.SetArgs([]string{"help", "list"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "List packages")
}

func TestGlamourRenderer_PlainTextPassesThrough(t *testing.T) {
	r := topics.NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := &topics.GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Phases\n\nremove before install", ".md")
	assert.Contains(t, out, "Phases")
	assert.Contains(t, out, "remove before install")
}
