// Package topics provides a topic-based help system for Cobra CLI applications.
// It extends the default Cobra help command with help topics read from a
// file system, typically an embedded one, so the CLI documents itself.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics
	// Defaults to [".txt", ".md"] if not specified
	Extensions []string

	// Renderer for formatting topic content
	// Defaults to PlainRenderer if not specified
	Renderer Renderer
}

// New creates a new TopicManager reading topics from fsys
func New(fsys fs.FS) *TopicManager {
	return NewWithOptions(fsys, Options{})
}

// NewWithOptions creates a new TopicManager with custom options
func NewWithOptions(fsys fs.FS, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	return tm
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// Scan loads every topic file found in the file system
func (tm *TopicManager) Scan() error {
	if tm.fsys == nil {
		return nil
	}

	return fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}
		return nil
	})
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	// Flag-style topics: --dry-run -> dry-run
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, exists := tm.topics[name]; exists {
		return topic, true
	}

	topic, exists := tm.topics["option-"+name]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	topics := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics
}

// Render formats a topic with the configured renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, path.Ext(topic.FilePath))
}

// PrintTopics writes the topic index to w
func (tm *TopicManager) PrintTopics(w io.Writer, appName string) {
	topics := tm.ListTopics()
	if len(topics) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var options, general []string
	for _, name := range topics {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Initialize sets up the topic-based help system with default extensions
func Initialize(rootCmd *cobra.Command, fsys fs.FS) (*TopicManager, error) {
	return InitializeWithOptions(rootCmd, fsys, Options{})
}

// InitializeWithOptions replaces the help command of rootCmd with one that
// also knows about topics
func InitializeWithOptions(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := NewWithOptions(fsys, opts)
	if err := tm.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()
	name := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + name + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + name + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				tm.PrintTopics(out, name)
				return
			}

			if topic, exists := tm.GetTopic(args[0]); exists {
				fmt.Fprint(out, tm.Render(topic))
				return
			}

			// Not a topic, look the command up
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				tm.originalHelp(rootCmd, args)
				return
			}
			tm.originalHelp(target, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)
	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, exists := tm.GetTopic(args[0]); exists {
				fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
				return
			}
		}
		tm.originalHelp(cmd, args)
	})

	return tm, nil
}
