/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/TaskBoard/cmd"
	"github.com/josephgoksu/TaskBoard/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
