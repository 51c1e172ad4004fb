package client

import "github.com/dmitrijs2005/dailyjournal/internal/common"

var (
	ErrKeyGeneration = common.ErrorKeyGeneration
	ErrUnavailable   = common.ErrorUnavailable
)
