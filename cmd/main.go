package main

import (
	"github.com/marmotdata/schemakit/internal/cmd"
	"github.com/rs/zerolog/log"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Fatal().Err(err)
	}
}
