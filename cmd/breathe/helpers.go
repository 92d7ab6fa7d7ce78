package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/charlie0129/breathe/pkg/config"
)

func loadConfig() (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debugf("config loaded from %s", configPath)
	return conf, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
