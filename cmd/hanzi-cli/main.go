package main

import "github.com/yintzuyuan/hanzicomp/cmd/hanzi-cli/cmd"

func main() {
	cmd.Execute()
}
