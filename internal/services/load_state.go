package services

// LoadState is the position of one load in its lifecycle:
// Idle -> FetchingShow -> {Failed | FetchingEpisodes -> {Failed | Completed}}.
type LoadState int32

const (
	StateIdle LoadState = iota
	StateFetchingShow
	StateFetchingEpisodes
	StateFailed
	StateCompleted
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingShow:
		return "fetching_show"
	case StateFetchingEpisodes:
		return "fetching_episodes"
	case StateFailed:
		return "failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s LoadState) Terminal() bool {
	return s == StateFailed || s == StateCompleted
}
