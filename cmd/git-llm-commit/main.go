package main

import (
	"os"

	"github.com/gitllm/git-llm-commit/internal/apperr"
	"github.com/gitllm/git-llm-commit/internal/cli"
	"github.com/gitllm/git-llm-commit/internal/log"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(apperr.ExitCode(err))
	}
}
