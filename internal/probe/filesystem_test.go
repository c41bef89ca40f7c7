package probe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jaypipes/ghw/pkg/block"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/fsutil"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

func TestClassifyFilesystem(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"ext4":    "ext4 (likely SSD/HDD)",
		"xfs":     "XFS",
		"btrfs":   "Btrfs",
		"nfs":     "NFS (Network)",
		"nfs4":    "NFS (Network)",
		"tmpfs":   "tmpfs (RAM)",
		"zfs":     "ZFS",
		"apfs":    "APFS (SSD)",
		"hfs":     "HFS+",
		"smbfs":   "SMB (Network)",
		"cifs":    "SMB (Network)",
		"overlay": "overlay",
		"NTFS":    "NTFS",
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassifyFilesystem(in), "ClassifyFilesystem(%q)", in)
	}
}

func TestMountType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fstype string
		opts   []string
		want   string
	}{
		{"nfs4", []string{"rw"}, "network"},
		{"smbfs", nil, "network"},
		{"fuse.sshfs", nil, "network"},
		{"apfs", []string{"local", "journaled"}, "local"},
		{"ext4", []string{"rw", "relatime"}, "local"},
		{"autofs", []string{"local"}, "local"},
		{"proc", nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MountType(tt.fstype, tt.opts), "MountType(%q, %v)", tt.fstype, tt.opts)
	}
}

func TestMatchMount(t *testing.T) {
	t.Parallel()
	sep := string(filepath.Separator)
	root := sep
	data := filepath.Join(sep, "data")
	dataScratch := filepath.Join(sep, "data", "scratch")

	parts := []disk.PartitionStat{
		{Device: "/dev/sda1", Mountpoint: root, Fstype: "ext4"},
		{Device: "/dev/sdb1", Mountpoint: data, Fstype: "xfs"},
		{Device: "server:/export", Mountpoint: dataScratch, Fstype: "nfs4"},
	}

	got, ok := matchMount(filepath.Join(dataScratch, "job"), parts)
	require.True(t, ok)
	assert.Equal(t, "nfs4", got.Fstype)

	got, ok = matchMount(data, parts)
	require.True(t, ok)
	assert.Equal(t, "xfs", got.Fstype)

	got, ok = matchMount(filepath.Join(sep, "database"), parts)
	require.True(t, ok)
	assert.Equal(t, "ext4", got.Fstype, "sibling with shared prefix must not match /data")

	_, ok = matchMount(data, nil)
	assert.False(t, ok)
}

func TestMatchMount_LaterMountWins(t *testing.T) {
	t.Parallel()
	mp := filepath.Join(string(filepath.Separator), "tmp")
	parts := []disk.PartitionStat{
		{Mountpoint: mp, Fstype: "ext4"},
		{Mountpoint: mp, Fstype: "tmpfs"},
	}
	got, ok := matchMount(mp, parts)
	require.True(t, ok)
	assert.Equal(t, "tmpfs", got.Fstype)
}

func TestIndexDriveTypes(t *testing.T) {
	t.Parallel()
	disks := []*block.Disk{
		{
			Name:       "nvme0n1",
			DriveType:  block.DriveTypeSSD,
			Partitions: []*block.Partition{{Name: "nvme0n1p1"}, {Name: "nvme0n1p2"}},
		},
		{Name: "sda", DriveType: block.DriveTypeHDD},
		{Name: "loop0", DriveType: block.DriveTypeUnknown},
		nil,
	}

	index := indexDriveTypes(disks)
	assert.Equal(t, "SSD", index["nvme0n1"])
	assert.Equal(t, "SSD", index["nvme0n1p2"])
	assert.Equal(t, "HDD", index["sda"])
	assert.NotContains(t, index, "loop0")
}

func fakeFilesystemProbe(paths []NamedPath, parts []disk.PartitionStat, usage *disk.UsageStat, usageErr error) *filesystemProbe {
	p := newFilesystemProbe(orDiscard(nil), paths)
	p.partitions = func(context.Context) ([]disk.PartitionStat, error) { return parts, nil }
	p.usage = func(context.Context, string) (*disk.UsageStat, error) { return usage, usageErr }
	p.drives = func() (map[string]string, error) { return map[string]string{"sdz1": "SSD"}, nil }
	return p
}

func TestFilesystemProbe_ReportsMountAndUsage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	resolved := fsutil.Resolve(dir)

	p := fakeFilesystemProbe(
		[]NamedPath{{Name: "scratch", Path: dir}},
		[]disk.PartitionStat{
			{Device: "/dev/root", Mountpoint: string(filepath.Separator), Fstype: "xfs"},
			{Device: "/dev/sdz1", Mountpoint: resolved, Fstype: "ext4", Opts: []string{"rw"}},
		},
		&disk.UsageStat{Total: 100 * gib, Free: 25 * gib, Fstype: "ext2/ext3"},
		nil,
	)

	r := report.New(fixedTime, "id")
	p.Run(context.Background(), r)

	require.Contains(t, r.Filesystem, "scratch")
	fs := r.Filesystem["scratch"]
	assert.Equal(t, dir, fs.Path)
	assert.Equal(t, "ext4 (likely SSD/HDD)", fs.Type)
	assert.Equal(t, "local", fs.MountType)
	assert.Equal(t, resolved, fs.MountPoint)
	assert.Equal(t, "/dev/sdz1", fs.Device)
	assert.Equal(t, "SSD", fs.DriveType)
	require.NotNil(t, fs.TotalGB)
	assert.Equal(t, 100.0, *fs.TotalGB)
	assert.Equal(t, 25.0, *fs.FreeGB)
	assert.Equal(t, 75.0, *fs.UsedPercent)
}

func TestFilesystemProbe_FallsBackToUsageType(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := fakeFilesystemProbe([]NamedPath{{Name: "tmp", Path: dir}}, nil,
		&disk.UsageStat{Total: 3 * gib, Free: 1 * gib, Fstype: "tmpfs"}, nil)

	r := report.New(fixedTime, "id")
	p.Run(context.Background(), r)

	fs := r.Filesystem["tmp"]
	assert.Equal(t, "tmpfs (RAM)", fs.Type)
	assert.Empty(t, fs.MountPoint)
	assert.Equal(t, 66.7, *fs.UsedPercent)
}

func TestFilesystemProbe_SkipsMissingPathsAndFailedUsage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := fakeFilesystemProbe(
		[]NamedPath{
			{Name: "present", Path: dir},
			{Name: "gone", Path: filepath.Join(dir, "does-not-exist")},
			{Name: "blank", Path: ""},
		},
		nil, nil, errors.New("statfs: permission denied"),
	)

	r := report.New(fixedTime, "id")
	p.Run(context.Background(), r)

	assert.NotContains(t, r.Filesystem, "gone")
	assert.NotContains(t, r.Filesystem, "blank")
	require.Contains(t, r.Filesystem, "present")
	fs := r.Filesystem["present"]
	assert.Equal(t, dir, fs.Path)
	assert.Empty(t, fs.Type)
	assert.Nil(t, fs.TotalGB)
	assert.Nil(t, fs.UsedPercent)
}

func TestFilesystemProbe_RealHost(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	r := report.New(fixedTime, "id")
	newFilesystemProbe(orDiscard(nil), []NamedPath{{Name: "tmp", Path: dir}}).Run(context.Background(), r)

	require.Contains(t, r.Filesystem, "tmp")
	fs := r.Filesystem["tmp"]
	assert.Equal(t, dir, fs.Path)
	if fs.UsedPercent != nil {
		assert.GreaterOrEqual(t, *fs.UsedPercent, 0.0)
		assert.LessOrEqual(t, *fs.UsedPercent, 100.0)
	}
}
