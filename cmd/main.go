// cmd/main.go

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ChumWorld/pkg/dgc"
	"ChumWorld/pkg/ngc"
	"ChumWorld/pkg/plugin"
	"ChumWorld/pkg/utils"
	"ChumWorld/pkg/version"

	"github.com/google/gops/agent"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = utils.GetLogger("chumworld")

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"debug", "v"},
			Usage:   "enable debug log",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only warning and errors",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable trace log",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "append logs to this file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "agent",
			Usage: "start a gops agent for runtime diagnostics",
		},
		&cli.StringFlag{
			Name:  "plugins",
			Usage: "YAML file binding record types to plugins",
		},
	}
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print only the version",
	}
	return &cli.App{
		Name:                 "chumworld",
		Usage:                "Edit Revenge of the Flying Dutchman archive files.",
		Version:              version.Version(),
		Copyright:            "MIT",
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Commands: []*cli.Command{
			infoFlags(),
			listFlags(),
			extractFlags(),
			packFlags(),
			verifyFlags(),
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		logger.Fatal(err)
	}
}

func setLoggerLevel(c *cli.Context) {
	if c.Bool("trace") {
		utils.SetLogLevel(logrus.TraceLevel)
	} else if c.Bool("verbose") {
		utils.SetLogLevel(logrus.DebugLevel)
	} else if c.Bool("quiet") {
		utils.SetLogLevel(logrus.WarnLevel)
	} else {
		utils.SetLogLevel(logrus.InfoLevel)
	}
}

func setup(c *cli.Context, nargs int) error {
	setLoggerLevel(c)
	if p := c.String("log"); p != "" {
		if err := utils.SetOutFile(p); err != nil {
			logger.Warnf("open log file %s: %s", p, err)
		}
	}
	if c.Bool("agent") {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Warnf("start gops agent: %s", err)
		}
	}
	if c.Args().Len() < nargs {
		return fmt.Errorf("%s needs %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

func newRegistry(c *cli.Context) (*plugin.Registry, error) {
	reg := plugin.Default()
	if p := c.String("plugins"); p != "" {
		conf, err := plugin.LoadConfig(p)
		if err != nil {
			return nil, err
		}
		if err = conf.Apply(reg); err != nil {
			return nil, err
		}
		logger.Debugf("plugin bindings from %s: %v", p, reg.Types())
	}
	return reg, nil
}

// archivePaths returns the data and name table paths of the archive pair
// that path names, whatever extension it was given with.
func archivePaths(path string) (string, string) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ".DGC", base + ".NGC"
}

func loadArchive(path string) (*dgc.Archive, *ngc.Table, error) {
	dgcPath, ngcPath := archivePaths(path)
	names, err := ngc.Open(ngcPath)
	if err != nil {
		return nil, nil, err
	}
	a, err := dgc.Open(dgcPath)
	if err != nil {
		return nil, nil, err
	}
	return a, names, nil
}
