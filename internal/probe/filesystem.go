package probe

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/hugo-lorenzo-mato/hostprobe/internal/fsutil"
	"github.com/hugo-lorenzo-mato/hostprobe/internal/report"
)

type filesystemProbe struct {
	logger *slog.Logger
	paths  []NamedPath

	partitions func(ctx context.Context) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	drives     func() (map[string]string, error)
}

func newFilesystemProbe(logger *slog.Logger, paths []NamedPath) *filesystemProbe {
	return &filesystemProbe{
		logger: logger,
		paths:  paths,
		partitions: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, true)
		},
		usage:  disk.UsageWithContext,
		drives: loadDriveTypes,
	}
}

func (p *filesystemProbe) Name() string { return "filesystem" }

func (p *filesystemProbe) Run(ctx context.Context, r *report.Report) {
	parts, err := p.partitions(ctx)
	if err != nil {
		p.logger.Debug("listing partitions failed", "error", err)
	}

	var drives map[string]string
	if len(parts) > 0 {
		if drives, err = p.drives(); err != nil {
			p.logger.Debug("block device info unavailable", "error", err)
		}
	}

	for _, np := range p.paths {
		if np.Path == "" || !fsutil.Exists(np.Path) {
			continue
		}
		r.Filesystem[np.Name] = p.inspect(ctx, np.Path, parts, drives)
	}
}

func (p *filesystemProbe) inspect(ctx context.Context, path string, parts []disk.PartitionStat, drives map[string]string) report.FilesystemPath {
	entry := report.FilesystemPath{Path: path}
	resolved := fsutil.Resolve(path)

	var fstype string
	var opts []string
	if part, ok := matchMount(resolved, parts); ok {
		entry.MountPoint = part.Mountpoint
		entry.Device = part.Device
		entry.DriveType = drives[filepath.Base(part.Device)]
		fstype = part.Fstype
		opts = part.Opts
	}

	usage, err := p.usage(ctx, resolved)
	if err != nil {
		p.logger.Debug("filesystem usage unavailable", "path", path, "error", err)
	}
	if usage != nil {
		if fstype == "" {
			fstype = usage.Fstype
		}
		if usage.Total > 0 {
			total := float64(usage.Total) / gib
			free := float64(usage.Free) / gib
			entry.TotalGB = report.Float(total)
			entry.FreeGB = report.Float(free)
			entry.UsedPercent = report.Percent((total - free) / total * 100)
		}
	}

	if fstype != "" {
		entry.Type = ClassifyFilesystem(fstype)
		entry.MountType = MountType(fstype, opts)
	}
	return entry
}

// matchMount returns the partition whose mount point is the longest prefix of
// path. On ties the later entry wins, since it is mounted on top.
func matchMount(path string, parts []disk.PartitionStat) (disk.PartitionStat, bool) {
	var best disk.PartitionStat
	bestLen := -1
	for _, part := range parts {
		mp := part.Mountpoint
		if mp == "" || !underMount(path, mp) {
			continue
		}
		if len(mp) >= bestLen {
			best = part
			bestLen = len(mp)
		}
	}
	return best, bestLen >= 0
}

func underMount(path, mountPoint string) bool {
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		mountPoint = strings.ToLower(mountPoint)
	}
	if path == mountPoint {
		return true
	}
	prefix := mountPoint
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

var fsLabels = map[string]string{
	"ext4":  "ext4 (likely SSD/HDD)",
	"xfs":   "XFS",
	"btrfs": "Btrfs",
	"tmpfs": "tmpfs (RAM)",
	"zfs":   "ZFS",
	"apfs":  "APFS (SSD)",
	"hfs":   "HFS+",
	"smbfs": "SMB (Network)",
	"cifs":  "SMB (Network)",
	"smb3":  "SMB (Network)",
}

var networkFS = []string{"nfs", "nfs4", "smbfs", "cifs", "smb3", "afpfs", "webdav", "fuse.sshfs", "9p", "ceph", "glusterfs", "lustre"}

var localFS = []string{
	"ext2", "ext3", "ext4", "xfs", "btrfs", "zfs", "f2fs", "tmpfs", "overlay",
	"apfs", "hfs", "ntfs", "vfat", "exfat", "refs", "ufs", "ffs",
}

// ClassifyFilesystem maps a filesystem type to a descriptive label.
// Unknown types are returned unchanged.
func ClassifyFilesystem(fstype string) string {
	t := strings.ToLower(strings.TrimSpace(fstype))
	if strings.HasPrefix(t, "nfs") {
		return "NFS (Network)"
	}
	if label, ok := fsLabels[t]; ok {
		return label
	}
	return fstype
}

// MountType returns "network", "local", or "" when neither can be told.
func MountType(fstype string, opts []string) string {
	t := strings.ToLower(strings.TrimSpace(fstype))
	if slices.Contains(networkFS, t) || strings.HasPrefix(t, "nfs") {
		return "network"
	}
	if slices.Contains(opts, "local") || slices.Contains(localFS, t) {
		return "local"
	}
	return ""
}

func loadDriveTypes() (map[string]string, error) {
	info, err := ghw.Block()
	if err != nil {
		return nil, err
	}
	return indexDriveTypes(info.Disks), nil
}

// indexDriveTypes maps disk and partition device names to the disk's drive type.
func indexDriveTypes(disks []*block.Disk) map[string]string {
	index := make(map[string]string)
	for _, d := range disks {
		if d == nil || d.DriveType == block.DriveTypeUnknown {
			continue
		}
		kind := d.DriveType.String()
		index[d.Name] = kind
		for _, part := range d.Partitions {
			if part != nil {
				index[part.Name] = kind
			}
		}
	}
	return index
}
