package slugs

import "github.com/goliatone/go-sluggable/pkg/interfaces"

// Peer aliases a stored (key, slug) pair.
type Peer = interfaces.SlugPeer

// PeerSet is the ordered key -> slug mapping of records whose slug is similar
// to a candidate. It is rebuilt for every uniqueness check.
type PeerSet struct {
	entries []Peer
	index   map[string]int
}

// NewPeerSet keeps the finder's order. A repeated key keeps its first value.
func NewPeerSet(peers []Peer) PeerSet {
	set := PeerSet{
		entries: make([]Peer, 0, len(peers)),
		index:   make(map[string]int, len(peers)),
	}
	for _, peer := range peers {
		if _, seen := set.index[peer.Key]; seen {
			continue
		}
		set.index[peer.Key] = len(set.entries)
		set.entries = append(set.entries, peer)
	}
	return set
}

// Len reports the number of peers.
func (s PeerSet) Len() int {
	return len(s.entries)
}

// Has reports whether key is present.
func (s PeerSet) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Get returns the slug stored for key.
func (s PeerSet) Get(key string) (string, bool) {
	idx, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.entries[idx].Slug, true
}

// Contains reports whether any peer holds exactly slug.
func (s PeerSet) Contains(slug string) bool {
	_, ok := s.Search(slug)
	return ok
}

// Search returns the first key whose value equals slug.
func (s PeerSet) Search(slug string) (string, bool) {
	for _, peer := range s.entries {
		if peer.Slug == slug {
			return peer.Key, true
		}
	}
	return "", false
}

// Values returns the slugs in order.
func (s PeerSet) Values() []string {
	out := make([]string, len(s.entries))
	for i, peer := range s.entries {
		out[i] = peer.Slug
	}
	return out
}

// Entries returns a copy of the ordered pairs.
func (s PeerSet) Entries() []Peer {
	return append([]Peer(nil), s.entries...)
}
