// Command datagen generates synthetic data from composable generators.
package main

import "github.com/sarchlab/datagen/datagen/cmd"

func main() {
	cmd.Execute()
}
