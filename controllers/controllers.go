package controllers

import (
	"github.com/breevs/roulette-backend/services"
)

// Injected once at startup; tests swap these for instances backed by an
// in-memory store and a mock text generator.
var (
	Summaries    *services.SummaryService
	Commentaries *services.CommentaryService
)

// Init wires the generation services into the handler package.
func Init(summaries *services.SummaryService, commentaries *services.CommentaryService) {
	Summaries = summaries
	Commentaries = commentaries
}
