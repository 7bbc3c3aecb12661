//	@title			Ketcher Annotation API
//	@version		1.0
//	@description	Chemical structure annotation workflow: tasks, normalization, QC review and export

//	@BasePath	/api/v0

//	@tag.name			tasks
//	@tag.description	Annotation task management operations

//	@tag.name			chem
//	@tag.description	Structure parsing and conformer operations

package main

import (
	"os"

	"github.com/Keith9922/Ketcher-demo/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
