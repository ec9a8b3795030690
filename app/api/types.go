package api

import (
	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/pipeline"
)

type Handler struct {
	runner  *pipeline.Runner
	runRepo database.RunRepository
	version string
}
