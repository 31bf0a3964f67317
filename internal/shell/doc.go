// Package shell provides the interactive escli shell.
//
// The shell reads lines with chzyer/readline, keeps a persistent history and
// completes command names, subcommands and context names on TAB. Each line
// runs one command from the commands package against the session's active
// cluster.
//
// # Quick Start
//
//	store := escontext.NewStorageWithPath(dir)
//	sess := session.New(store, connection.NewManager(connection.Options{}))
//	_ = sess.Load()
//
//	repl := shell.NewREPL(sess, shell.NewLogger(false), shell.Options{
//	    HistoryFile:  historyFile,
//	    ShowProgress: true,
//	})
//	if err := repl.Run(ctx); err != nil {
//	    return err
//	}
//
// # Prompt
//
// The prompt shows the current context, "(prod) escli> ", or
// "(no context) escli> " when disconnected. It is refreshed whenever the
// session switches or drops its context.
//
// # Output
//
// Logger separates command output from status messages. Results, tables and
// panels go to the output writer; errors go to the error writer; debug lines
// are printed only in verbose mode.
package shell
