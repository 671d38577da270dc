//go:build fuse

// Package fuseview mounts a built aggregation index as a synthetic,
// read-only filesystem: one directory per FolderKey, one small text
// file per (owner, age bucket) pair holding that cell's formatted
// UserStats. Adapted from the teacher's inode_fuse.go, which exposes a
// squashfs image's real inode tree the same way go-fuse's higher-level
// fs package exposes any InodeEmbedder tree; here the tree comes from
// fsindex.Index rather than an on-disk archive.
package fuseview

import (
	"context"
	"fmt"
	"sort"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/sganis/dutopia-go/internal/fsindex"
)

// Mount mounts idx read-only at mountpoint and returns the serving
// *fuse.Server without waiting for unmount; the caller calls Wait on it
// to block until the filesystem is unmounted.
func Mount(mountpoint string, idx *fsindex.Index) (*fuse.Server, error) {
	root := &dirNode{idx: idx, path: "/"}
	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName:   "dutopia",
			Name:     "dutopia",
			ReadOnly: true,
		},
	}
	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		return nil, err
	}
	return server, nil
}

// dirNode is one synthetic directory, keyed by its canonical FolderKey.
type dirNode struct {
	fs.Inode
	idx  *fsindex.Index
	path string
}

var (
	_ fs.NodeLookuper  = (*dirNode)(nil)
	_ fs.NodeReaddirer = (*dirNode)(nil)
	_ fs.NodeGetattrer = (*dirNode)(nil)
)

func (d *dirNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFDIR | 0o555
	return 0
}

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// Lookup resolves name as either a child directory (a folder key one
// level below d.path) or a synthetic stat file (owner@bucket).
func (d *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if statNode, ok := d.lookupStatFile(name); ok {
		out.Mode = fuse.S_IFREG | 0o444
		out.Size = uint64(len(statNode.contents))
		child := d.NewInode(ctx, statNode, fs.StableAttr{Mode: fuse.S_IFREG})
		return child, 0
	}

	names, err := d.idx.ChildNames(d.path)
	if err != nil {
		return nil, syscall.ENOENT
	}
	for _, n := range names {
		if n == name {
			out.Mode = fuse.S_IFDIR | 0o555
			child := &dirNode{idx: d.idx, path: childPath(d.path, name)}
			return d.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFDIR}), 0
		}
	}
	return nil, syscall.ENOENT
}

func (d *dirNode) lookupStatFile(name string) (*statFile, bool) {
	stats := d.idx.StatsAt(d.path)
	for owner, byBucket := range stats {
		for bucket, age := range byBucket {
			fname := fmt.Sprintf("%s@%s.stat", owner, bucket)
			if fname == name {
				return &statFile{contents: []byte(formatAge(owner, bucket, age))}, true
			}
		}
	}
	return nil, false
}

func formatAge(owner, bucket string, a fsindex.Age) string {
	return fmt.Sprintf("owner=%s\nbucket=%s\ncount=%d\nsize=%d\ndisk=%d\nlinked=%d\natime=%d\nmtime=%d\n",
		owner, bucket, a.Count, a.Size, a.Disk, a.Linked, a.Atime, a.Mtime)
}

// Readdir lists child directories followed by this directory's own
// synthetic stat files.
func (d *dirNode) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	names, err := d.idx.ChildNames(d.path)
	if err != nil {
		return nil, syscall.ENOENT
	}
	entries := make([]fuse.DirEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, fuse.DirEntry{Name: n, Mode: fuse.S_IFDIR})
	}
	stats := d.idx.StatsAt(d.path)
	var statNames []string
	for owner, byBucket := range stats {
		for bucket := range byBucket {
			statNames = append(statNames, fmt.Sprintf("%s@%s.stat", owner, bucket))
		}
	}
	sort.Strings(statNames)
	for _, n := range statNames {
		entries = append(entries, fuse.DirEntry{Name: n, Mode: fuse.S_IFREG})
	}
	return fs.NewListDirStream(entries), 0
}

// statFile is a synthetic read-only file node holding one formatted Age.
type statFile struct {
	fs.Inode
	contents []byte
}

var (
	_ fs.NodeGetattrer = (*statFile)(nil)
	_ fs.NodeOpener    = (*statFile)(nil)
	_ fs.NodeReader    = (*statFile)(nil)
)

func (f *statFile) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFREG | 0o444
	out.Size = uint64(len(f.contents))
	return 0
}

func (f *statFile) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (f *statFile) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	if off >= int64(len(f.contents)) {
		return fuse.ReadResultData(nil), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(f.contents)) {
		end = int64(len(f.contents))
	}
	return fuse.ReadResultData(f.contents[off:end]), 0
}
