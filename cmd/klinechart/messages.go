package main

import "github.com/rxtech-lab/argo-kline/internal/types"

// BarsLoadedMsg carries the bars read from the data file.
type BarsLoadedMsg struct {
	Bars []types.Bar
}

// LoadErrorMsg indicates the data file could not be loaded.
type LoadErrorMsg struct {
	Err error
}
