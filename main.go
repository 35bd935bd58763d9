/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/beatrizzfernandes/gestao-equipamentos/cmd"

func main() {
	cmd.Execute()
}
