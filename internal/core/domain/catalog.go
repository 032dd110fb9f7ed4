package domain

// Catalog is an immutable snapshot of tracks with their feature vectors.
// Snapshots are built whole and swapped atomically by their holder, so a
// catalog is safe for concurrent readers without locking. Track order is
// insertion order and doubles as the stable tiebreak for ranking.
type Catalog struct {
	version  string
	tracks   []Track
	byID     map[string]int
	clusters *ClusterAssignment
}

// NewCatalog builds a snapshot from tracks in the given order. Features are
// clamped on the way in; a duplicate id keeps its first occurrence.
func NewCatalog(version string, tracks []Track) *Catalog {
	c := &Catalog{
		version: version,
		tracks:  make([]Track, 0, len(tracks)),
		byID:    make(map[string]int, len(tracks)),
	}
	for _, t := range tracks {
		if _, dup := c.byID[t.ID]; dup {
			continue
		}
		t.Features = t.Features.Clamp()
		c.byID[t.ID] = len(c.tracks)
		c.tracks = append(c.tracks, t)
	}
	return c
}

// Version identifies the snapshot's content for cache invalidation.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of tracks in the snapshot.
func (c *Catalog) Len() int { return len(c.tracks) }

// Track returns the track at position i in insertion order.
func (c *Catalog) Track(i int) Track { return c.tracks[i] }

// Tracks returns the underlying track slice in insertion order. Callers must
// treat it as read-only.
func (c *Catalog) Tracks() []Track { return c.tracks }

// IndexOf returns the position of the track with the given id.
func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Lookup returns the track with the given id.
func (c *Catalog) Lookup(id string) (Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Clusters returns the cluster assignment attached to this snapshot, or nil
// when the catalog is unclustered.
func (c *Catalog) Clusters() *ClusterAssignment { return c.clusters }

// WithClusters returns a copy of the snapshot with the assignment attached.
// The receiver is left untouched, preserving snapshot immutability.
func (c *Catalog) WithClusters(a *ClusterAssignment) *Catalog {
	out := *c
	out.clusters = a
	return &out
}

// ClusterAssignment partitions a catalog's tracks into feature-space
// regions. Labels is indexed by track position; every track belongs to
// exactly one cluster.
type ClusterAssignment struct {
	K         int
	Labels    []int
	Centroids []AudioFeatures
}

// Members returns the track positions assigned to the given cluster, in
// insertion order.
func (a *ClusterAssignment) Members(cluster int) []int {
	var out []int
	for i, label := range a.Labels {
		if label == cluster {
			out = append(out, i)
		}
	}
	return out
}

// Nearest returns the cluster whose centroid is most similar to target.
// Ties resolve to the lowest cluster id to keep results deterministic.
func (a *ClusterAssignment) Nearest(target AudioFeatures) int {
	best := 0
	bestScore := -1.0
	for id, centroid := range a.Centroids {
		if s := Similarity(target, centroid); s > bestScore {
			best = id
			bestScore = s
		}
	}
	return best
}
