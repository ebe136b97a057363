// Package manifest discovers and loads package manifests.
//
// A manifest is an akabei.toml (or akabei.yaml / akabei.yml) file anywhere
// below the manifest root:
//
//	name = "tmux"
//
//	[[files]]
//	source = "tmux.conf"               # relative to the manifest directory
//	target = ".config/tmux/tmux.conf"  # relative to $HOME
//	mode = "644"
//
//	[[files]]
//	content = "export EDITOR=vim\n"    # inline instead of source
//	target = ".profile.d/editor.sh"
//
//	[[hooks.post_install]]
//	command = ["tmux", "source-file", "~/.config/tmux/tmux.conf"]
//
//	[[hooks.pre_remove]]
//	command = "tmux kill-server || true"   # runs as sh -c
//
// Loading is eager: every manifest is parsed, its sources read, templated
// and digested, so any problem surfaces before the run mutates anything.
package manifest
