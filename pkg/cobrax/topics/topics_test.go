package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"

	"github.com/chipbuild/chipbuild/pkg/testutil"
)

func TestTopicManagerScanTopics(t *testing.T) {
	topicsFS := fstest.MapFS{
		"dry-run.txt":     {Data: []byte("Information about dry-run mode")},
		"architecture.md": {Data: []byte("# Architecture\n\nSystem architecture details")},
		"config.txxt":     {Data: []byte("Configuration Guide\n==================")},
		"ignore.json":     {Data: []byte("This should be ignored")},
	}

	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicsFS)
		err := tm.scanTopics()
		testutil.AssertNoError(t, err)

		// Only .txt and .md are loaded by default
		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"dry-run", true, "Information about dry-run mode"},
			{"architecture", true, "# Architecture\n\nSystem architecture details"},
			{"config", false, ""},
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				testutil.AssertEqual(t, tt.expected, exists)
				if exists {
					testutil.AssertEqual(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicsFS, Options{
			Extensions: []string{".txt", ".md", ".txxt"},
		})
		err := tm.scanTopics()
		testutil.AssertNoError(t, err)

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"dry-run", true, "Information about dry-run mode"},
			{"architecture", true, "# Architecture\n\nSystem architecture details"},
			{"config", true, "Configuration Guide\n=================="},
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				testutil.AssertEqual(t, tt.expected, exists)
				if exists {
					testutil.AssertEqual(t, tt.content, topic.Content)
				}
			})
		}
	})
}

func TestTopicManagerGetTopic(t *testing.T) {
	topicsFS := fstest.MapFS{
		"option-dry-run.txt": {Data: []byte("Dry run help")},
		"option-verbose.txt": {Data: []byte("Verbose help")},
		"environment.txt":    {Data: []byte("Environment help")},
	}

	tm := New(topicsFS)
	err := tm.scanTopics()
	testutil.AssertNoError(t, err)

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		// Direct topic name
		{"environment", "environment", true},
		// Option topics with prefix
		{"option-dry-run", "option-dry-run", true},
		// Flag-style lookups should find option- prefixed files
		{"dry-run", "option-dry-run", true},
		{"--dry-run", "option-dry-run", true},
		{"-dry-run", "option-dry-run", true},
		{"verbose", "option-verbose", true},
		{"-v", "", false}, // Single letter flags don't match
		{"--verbose", "option-verbose", true},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			testutil.AssertEqual(t, tt.exists, exists)
			if exists {
				testutil.AssertEqual(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManagerListTopics(t *testing.T) {
	names := []string{"targets", "environment", "dry-run", "artifacts"}
	topicsFS := fstest.MapFS{}
	for _, name := range names {
		topicsFS[name+".txt"] = &fstest.MapFile{Data: []byte("Help for " + name)}
	}

	tm := New(topicsFS)
	err := tm.scanTopics()
	testutil.AssertNoError(t, err)

	list := tm.ListTopics()
	testutil.AssertEqual(t, len(names), len(list))

	topicMap := make(map[string]bool)
	for _, topic := range list {
		topicMap[topic] = true
	}

	for _, expected := range names {
		if !topicMap[expected] {
			t.Errorf("Expected topic %s not found in list", expected)
		}
	}
}

func TestInitialize(t *testing.T) {
	topicsFS := fstest.MapFS{
		"test-topic.txt": {Data: []byte("Test topic content")},
	}

	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "build",
		Short: "Build something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	err := Initialize(rootCmd, topicsFS)
	testutil.AssertNoError(t, err)

	// Check that help command exists
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "help", helpCmd.Name())
	testutil.AssertEqual(t, "help [command or topic]", helpCmd.Use)
}

func TestNilTopicsFS(t *testing.T) {
	// A nil filesystem means no topics, not an error
	tm := New(nil)
	err := tm.scanTopics()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 0, len(tm.ListTopics()))
}

func TestEmptyTopicsFS(t *testing.T) {
	tm := New(fstest.MapFS{})
	err := tm.scanTopics()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 0, len(tm.ListTopics()))
}

func TestSubdirectoryTopics(t *testing.T) {
	topicsFS := fstest.MapFS{
		"advanced/toolchains.txt": {Data: []byte("Toolchain help")},
	}

	tm := New(topicsFS)
	err := tm.scanTopics()
	testutil.AssertNoError(t, err)

	// Subdirectories are flattened, so this is found as "toolchains"
	topic, exists := tm.GetTopic("toolchains")
	testutil.AssertTrue(t, exists)
	testutil.AssertEqual(t, "Toolchain help", topic.Content)
}

func TestHelpCommandRendersTopic(t *testing.T) {
	topicsFS := fstest.MapFS{
		"dry-run.txt": {Data: []byte("DRY RUN MODE\nThis is a test of dry run help.")},
	}

	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}

	err := Initialize(rootCmd, topicsFS)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"help", "dry-run"})
	testutil.AssertNoError(t, rootCmd.Execute())

	testutil.AssertContains(t, buf.String(), "DRY RUN MODE")
}

func TestHelpCommandListsTopics(t *testing.T) {
	topicsFS := fstest.MapFS{
		"environment.txt":    {Data: []byte("env help")},
		"option-dry-run.txt": {Data: []byte("dry run help")},
	}

	rootCmd := &cobra.Command{
		Use:   "testapp",
		Short: "Test application",
	}

	err := Initialize(rootCmd, topicsFS)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"help", "topics"})
	testutil.AssertNoError(t, rootCmd.Execute())

	out := buf.String()
	testutil.AssertContains(t, out, "General topics:")
	testutil.AssertContains(t, out, "  environment")
	testutil.AssertContains(t, out, "Option topics:")
	testutil.AssertContains(t, out, "  --dry-run")
	testutil.AssertContains(t, out, "Use 'testapp help <topic>'")
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	content := "plain text content"
	testutil.AssertEqual(t, content, r.Render(content, ".txt"))
}
