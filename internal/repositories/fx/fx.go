package fx

import (
	"github.com/orgball2608/insta-rest-api/internal/repositories/download"
	"go.uber.org/fx"
)

var Module = fx.Options(
	download.Module,
)
