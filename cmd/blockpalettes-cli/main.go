package main

import (
	"blockpalettes/cmd/blockpalettes-cli/commands"
	"blockpalettes/internal/components/serviceutil"
	"blockpalettes/pkg/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx, stop := serviceutil.SignalContext()
	err := commands.ExecuteContext(ctx)
	stop()
	if err != nil {
		serviceutil.Fatal("command failed", err)
	}
}
