package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/jablog/internal/admin"
)

func main() {

	ctx := context.Background()
	if err := admin.RootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
