package models

// ShowPage is the outcome of a complete show-details load: the show and its
// episodes in server order.
type ShowPage struct {
	Request  RequestContext `json:"-"`
	Show     ShowDetails    `json:"show"`
	Episodes []Episode      `json:"episodes"`
}

// EpisodeCount returns the number of episodes on the page.
func (p *ShowPage) EpisodeCount() int {
	return len(p.Episodes)
}

// AddEpisodeTarget returns the reference used to open the "add episode" flow
// for this page's show.
func (p *ShowPage) AddEpisodeTarget() EpisodeRef {
	return EpisodeRef{ShowID: p.Request.ShowID, Token: p.Request.Token}
}

// EpisodeTarget returns the reference of the given episode, or false when the
// page does not list it.
func (p *ShowPage) EpisodeTarget(episodeID string) (EpisodeRef, bool) {
	for _, e := range p.Episodes {
		if e.ID == episodeID {
			return EpisodeRef{ShowID: p.Request.ShowID, EpisodeID: e.ID, Token: p.Request.Token}, true
		}
	}
	return EpisodeRef{}, false
}

// WithEpisodes returns a copy of the page whose episode list is replaced by episodes.
func (p *ShowPage) WithEpisodes(episodes []Episode) *ShowPage {
	return &ShowPage{
		Request:  p.Request,
		Show:     p.Show,
		Episodes: episodes,
	}
}
