package cmd

import (
	"flag"

	"github.com/etnz/pnl/docs"
	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion of the commander when the shell asks for
// it, and does nothing otherwise.
//
// Install it with:
//
//	COMP_INSTALL=1 mbp
func Complete(c *subcommands.Commander, name string) {
	completionTree(c).Complete(name)
}

// completionTree describes the commands of c and their flags.
func completionTree(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	var names []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	})

	if sub, ok := root.Sub["help"]; ok {
		sub.Args = predict.Set(names)
	}
	if sub, ok := root.Sub["topic"]; ok {
		if topics, err := docs.GetAllTopics(); err == nil {
			sub.Args = predict.Set(topics)
		}
	}
	if sub, ok := root.Sub["positions"]; ok {
		sub.Flags["sort"] = predict.Set(renderer.SortKeys)
	}
	return root
}

// flagPredictors predicts the value of every flag in fs: directories for
// flags naming a folder, nothing for boolean flags.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case isBoolFlag(f):
			predictors[f.Name] = nil
		case f.Name == "snapshot-dir" || f.Name == "cache-dir":
			predictors[f.Name] = predict.Dirs("*")
		default:
			predictors[f.Name] = predict.Something
		}
	})
	return predictors
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
