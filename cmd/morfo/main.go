// Command morfo builds a C/C++ program from its main file and runs it.
package main

import (
	"shanhu.io/morfo/morfobin"
)

func main() { morfobin.Main() }
