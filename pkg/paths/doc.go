// Package paths provides centralized path handling for akabei.
//
// It resolves the three locations a run depends on:
//
//   - Home: the base directory relative manifest targets resolve against,
//     and the working directory for hooks
//   - ManifestRoot: the directory walked for akabei.toml / akabei.yaml files
//     (default: the current working directory)
//   - StatePath: the persisted state snapshot
//     (default: $XDG_DATA_HOME/akabei.json)
//
// # Usage
//
//	p, err := paths.New(paths.Options{})
//	if err != nil {
//	    return err
//	}
//
//	p.ResolveTarget(".bashrc")             // /home/user/.bashrc
//	p.ResolveSource("/m/tmux/akabei.toml",
//	    "tmux.conf")                        // /m/tmux/tmux.conf
package paths
