package main

import (
	"github.com/JamisonHolt/no-uncaught-errors/nouncaughterrors"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(nouncaughterrors.Analyzer)
}
