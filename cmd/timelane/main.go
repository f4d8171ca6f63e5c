// Command timelane lays out date-ranged items into non-overlapping timeline lanes.
package main

import (
	"github.com/huangsam/timelane/cmd"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	iocache.CloseStores()
	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogFatal("timelane", err)
	}
}
