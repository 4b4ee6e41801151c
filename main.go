package main

import "github.com/pgierz/snakemake-wrapper-esm-master/cmd"

func main() {
	cmd.Execute()
}
