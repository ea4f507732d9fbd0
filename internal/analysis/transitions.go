package analysis

// TopTransitionLimit caps the top_transitions list.
const TopTransitionLimit = 50

const DefaultTransitionMinCount = 2

type TransitionsOptions struct {
	GapMinutes             int
	MinCount               int
	IncludeSelfTransitions bool
}

func DefaultTransitionsOptions() TransitionsOptions {
	return TransitionsOptions{
		GapMinutes: DefaultSessionGapMinutes,
		MinCount:   DefaultTransitionMinCount,
	}
}

type Transition struct {
	FromArtist string  `json:"from_artist" yaml:"from_artist"`
	ToArtist   string  `json:"to_artist" yaml:"to_artist"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Size  int    `json:"size" yaml:"size"`
}

type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Weight int    `json:"weight" yaml:"weight"`
}

type NetworkGraph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

type TransitionsSummary struct {
	TotalTransitions         int         `json:"total_transitions" yaml:"total_transitions"`
	UniqueTransitions        int         `json:"unique_transitions" yaml:"unique_transitions"`
	MostCommonTransition     *Transition `json:"most_common_transition" yaml:"most_common_transition"`
	MostConnectedArtist      string      `json:"most_connected_artist" yaml:"most_connected_artist"`
	AvgTransitionsPerSession float64     `json:"avg_transitions_per_session" yaml:"avg_transitions_per_session"`
}

type TransitionsReport struct {
	Transitions    []Transition       `json:"transitions" yaml:"transitions"`
	TopTransitions []Transition       `json:"top_transitions" yaml:"top_transitions"`
	NetworkData    NetworkGraph       `json:"network_data" yaml:"network_data"`
	Summary        TransitionsSummary `json:"summary" yaml:"summary"`
}

type artistPair struct {
	from string
	to   string
}

// AnalyzeTransitions counts which artist follows which within a session.
func AnalyzeTransitions(events []PlayEvent, opts TransitionsOptions) TransitionsReport {
	pairs := newCounter[artistPair]()
	appearances := newCounter[string]()
	activeSessions := 0

	for _, s := range DetectSessions(events, opts.GapMinutes) {
		counted := 0
		for i := 0; i+1 < len(s.Tracks); i++ {
			from, to := s.Tracks[i].Artist, s.Tracks[i+1].Artist
			if from == to && !opts.IncludeSelfTransitions {
				continue
			}
			pairs.add(artistPair{from, to})
			appearances.add(from)
			counted++
		}
		appearances.add(s.Tracks[len(s.Tracks)-1].Artist)
		if counted > 0 {
			activeSessions++
		}
	}

	total := 0
	for _, p := range pairs.order {
		total += pairs.get(p)
	}

	transitions := []Transition{}
	for _, p := range pairs.ranked() {
		count := pairs.get(p)
		if count < opts.MinCount {
			continue
		}
		transitions = append(transitions, Transition{
			FromArtist: p.from,
			ToArtist:   p.to,
			Count:      count,
			Percentage: percentOf(count, total),
		})
	}

	top := transitions
	if len(top) > TopTransitionLimit {
		top = top[:TopTransitionLimit]
	}

	summary := TransitionsSummary{
		TotalTransitions:  total,
		UniqueTransitions: len(transitions),
	}
	if len(transitions) > 0 {
		mostCommon := transitions[0]
		summary.MostCommonTransition = &mostCommon
	}
	if artist, _, ok := appearances.top(); ok {
		summary.MostConnectedArtist = artist
	}
	if activeSessions > 0 {
		summary.AvgTransitionsPerSession = float64(total) / float64(activeSessions)
	}

	return TransitionsReport{
		Transitions:    transitions,
		TopTransitions: top,
		NetworkData:    buildNetwork(transitions, appearances),
		Summary:        summary,
	}
}

func buildNetwork(transitions []Transition, appearances *counter[string]) NetworkGraph {
	graph := NetworkGraph{Nodes: []Node{}, Edges: []Edge{}}
	seen := make(map[string]struct{})
	addNode := func(artist string) {
		if _, ok := seen[artist]; ok {
			return
		}
		seen[artist] = struct{}{}
		graph.Nodes = append(graph.Nodes, Node{ID: artist, Label: artist, Size: appearances.get(artist)})
	}

	for _, t := range transitions {
		addNode(t.FromArtist)
		addNode(t.ToArtist)
		graph.Edges = append(graph.Edges, Edge{Source: t.FromArtist, Target: t.ToArtist, Weight: t.Count})
	}
	return graph
}
