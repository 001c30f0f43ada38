package expression

import "github.com/autobrr/qbtc/pkg/logger"

var log = logger.GetLogger("filter")
