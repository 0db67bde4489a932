// Command siteupdate builds SQL, stats, graphs and log files from
// highway and user data for the Travel Mapping project.
package main

import (
	"github.com/andrescamacho/tm-siteupdate/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
