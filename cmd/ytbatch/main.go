package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	ytbatchcmd "ytbatch/internal/cli/cmd"
)

func main() {
	// Optional .env in the working directory; real env vars win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ytbatchcmd.Execute(ctx); err != nil {
		var ee *ytbatchcmd.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			os.Exit(ee.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ytbatchcmd.ExitCLIError)
	}
	os.Exit(ytbatchcmd.ExitOK)
}
