package fsindex

import (
	"errors"
	"sort"
	"strconv"

	"github.com/sganis/dutopia-go/internal/aggregate"
)

// ErrNotFound is returned by ListChildren when dirPath has no trie node.
var ErrNotFound = errors.New("fsindex: directory not found")

// Age is the API-visible shape of one (owner,bucket) cell inside a
// FolderOut, mirroring aggregate.UserStats' fields under spec §4.G's
// naming.
type Age struct {
	Count   uint64 `json:"count"`
	Size    uint64 `json:"size"`
	Disk    uint64 `json:"disk"`
	Linked  uint64 `json:"linked"`
	Atime   int64  `json:"atime"`
	Mtime   int64  `json:"mtime"`
}

func ageFromStats(s *aggregate.UserStats) Age {
	return Age{
		Count: s.FileCount, Size: s.FileSize, Disk: s.DiskSize,
		Linked: s.LinkedSize, Atime: s.LatestAtime, Mtime: s.LatestMtime,
	}
}

// FolderOut is the API-visible aggregation of one directory's immediate
// children query result: owner -> (bucket-as-string -> Age).
type FolderOut struct {
	Path  string                    `json:"path"`
	Users map[string]map[string]Age `json:"users"`
}

// Index is the process-wide immutable structure built once from the
// aggregated rollup CSV. Read-only after LoadFromCSV returns.
type Index struct {
	root         *TrieNode
	stats        map[aggregate.RollupKey]*aggregate.UserStats
	statsByPath  map[string]map[string]map[int]*aggregate.UserStats
	usersByPath  map[string]map[string]struct{}
	allUsers     map[string]struct{}
}

// LoadFromCSV builds an Index from rollup rows already parsed out of the
// aggregated CSV (the output of Component F; LoadFromCSVReader does the
// parsing), inserting every path component into the trie and recording
// per-(path,user,bucket) stats, per spec §4.G's Build step.
func LoadFromCSV(rows []aggregate.RollupKey, stats map[aggregate.RollupKey]*aggregate.UserStats) *Index {
	idx := &Index{
		root:        newTrieNode(),
		stats:       make(map[aggregate.RollupKey]*aggregate.UserStats, len(stats)),
		statsByPath: make(map[string]map[string]map[int]*aggregate.UserStats),
		usersByPath: make(map[string]map[string]struct{}),
		allUsers:    make(map[string]struct{}),
	}
	for _, k := range rows {
		idx.insertPath(k.Path, k.User)
		s := stats[k]
		idx.stats[k] = s
		idx.allUsers[k.User] = struct{}{}

		byUser, ok := idx.statsByPath[k.Path]
		if !ok {
			byUser = make(map[string]map[int]*aggregate.UserStats)
			idx.statsByPath[k.Path] = byUser
		}
		byBucket, ok := byUser[k.User]
		if !ok {
			byBucket = make(map[int]*aggregate.UserStats)
			byUser[k.User] = byBucket
		}
		byBucket[k.Bucket] = s
	}
	return idx
}

// StatsAt returns the (owner -> bucket-string -> Age) stats recorded
// directly at path (not its children), for callers such as the bonus
// FUSE view that need a directory's own numbers rather than a listing
// of its children.
func (idx *Index) StatsAt(path string) map[string]map[string]Age {
	byUser, ok := idx.statsByPath[CanonicalKey(path)]
	if !ok {
		return nil
	}
	out := make(map[string]map[string]Age, len(byUser))
	for owner, byBucket := range byUser {
		inner := make(map[string]Age, len(byBucket))
		for bucket, s := range byBucket {
			inner[strconv.Itoa(bucket)] = ageFromStats(s)
		}
		out[owner] = inner
	}
	return out
}

// ChildNames returns the immediate child segment names of path in the
// trie, regardless of whether they have any recorded stats (unlike
// ListChildren, which only returns children with a nonempty owners
// mapping). Used by the bonus FUSE view to mirror the full directory
// shape the scan observed.
func (idx *Index) ChildNames(path string) ([]string, error) {
	segs := PathToComponents(CanonicalKey(path))
	node := idx.root
	for _, seg := range segs {
		child, ok := node.Children[seg]
		if !ok {
			return nil, ErrNotFound
		}
		node = child
	}
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (idx *Index) insertPath(path, owner string) {
	key := CanonicalKey(path)
	segs := PathToComponents(key)
	node := idx.root
	node.Users[owner] = struct{}{}
	for _, seg := range segs {
		node = node.child(seg)
		node.Users[owner] = struct{}{}
	}
	byPath, ok := idx.usersByPath[key]
	if !ok {
		byPath = make(map[string]struct{})
		idx.usersByPath[key] = byPath
	}
	byPath[owner] = struct{}{}
}

// GetUsers returns every owner name discovered during build, sorted.
// Authorization (who may see whom) is the external API layer's job;
// the index is authorization-agnostic per spec §4.G.
func (idx *Index) GetUsers() []string {
	out := make([]string, 0, len(idx.allUsers))
	for u := range idx.allUsers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// ListChildren implements spec §4.G's query contract.
func (idx *Index) ListChildren(dirPath string, userFilter []string, ageFilter *int) ([]FolderOut, error) {
	key := CanonicalKey(dirPath)
	segs := PathToComponents(key)
	node := idx.root
	for _, seg := range segs {
		child, ok := node.Children[seg]
		if !ok {
			return nil, ErrNotFound
		}
		node = child
	}

	filterSet := map[string]struct{}{}
	for _, u := range userFilter {
		filterSet[u] = struct{}{}
	}

	buckets := []int{0, 1, 2}
	if ageFilter != nil {
		buckets = []int{*ageFilter}
	}

	childNames := make([]string, 0, len(node.Children))
	for name := range node.Children {
		childNames = append(childNames, name)
	}
	sort.Strings(childNames)

	var out []FolderOut
	for _, name := range childNames {
		childPath := joinKey(key, name)
		owners, ok := idx.usersByPath[childPath]
		if !ok || len(owners) == 0 {
			continue
		}
		candidateOwners := ownersFor(owners, filterSet)
		sort.Strings(candidateOwners)

		usersOut := make(map[string]map[string]Age)
		for _, owner := range candidateOwners {
			inner := make(map[string]Age)
			for _, b := range buckets {
				s, ok := idx.stats[aggregate.RollupKey{Path: childPath, User: owner, Bucket: b}]
				if !ok {
					continue
				}
				inner[strconv.Itoa(b)] = ageFromStats(s)
			}
			if len(inner) > 0 {
				usersOut[owner] = inner
			}
		}
		if len(usersOut) == 0 {
			continue
		}
		out = append(out, FolderOut{Path: childPath, Users: usersOut})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func ownersFor(owners map[string]struct{}, filter map[string]struct{}) []string {
	var out []string
	if len(filter) == 0 {
		for o := range owners {
			out = append(out, o)
		}
		return out
	}
	for o := range owners {
		if _, ok := filter[o]; ok {
			out = append(out, o)
		}
	}
	return out
}

func joinKey(parent, seg string) string {
	if parent == "/" {
		return "/" + seg
	}
	return parent + "/" + seg
}
