package report

import (
	"fmt"
	"sort"
)

// Field is one printable key/value pair of a section.
type Field struct {
	Key   string
	Value any
}

// Group is a named block of fields nested under a section.
type Group struct {
	Name   string
	Fields []Field
}

// Section is a titled part of the text report.
type Section struct {
	Title  string
	Fields []Field
	Groups []Group
}

type fieldList []Field

func (l *fieldList) str(key, v string) {
	if v != "" {
		*l = append(*l, Field{Key: key, Value: v})
	}
}

func (l *fieldList) num(key string, v int) {
	if v != 0 {
		*l = append(*l, Field{Key: key, Value: v})
	}
}

func (l *fieldList) float(key string, v *float64) {
	if v != nil {
		*l = append(*l, Field{Key: key, Value: *v})
	}
}

// Sections returns the report body in print order. Absent values are skipped.
func (r *Report) Sections() []Section {
	sections := []Section{
		{Title: "CPU Information", Fields: r.CPU.fields()},
		{Title: "Memory Information", Fields: r.Memory.fields()},
		{Title: "Filesystem Information", Groups: r.filesystemGroups()},
	}

	if len(r.GPU) > 0 {
		groups := make([]Group, 0, len(r.GPU))
		for i, g := range r.GPU {
			groups = append(groups, Group{Name: fmt.Sprintf("gpu%d", i), Fields: g.fields()})
		}
		sections = append(sections, Section{Title: "GPU Information", Groups: groups})
	}

	if r.IOPerformance != nil {
		title := "I/O Performance (current directory)"
		if r.IOPerformance.Dir != "" {
			title = fmt.Sprintf("I/O Performance (%s)", r.IOPerformance.Dir)
		}
		sections = append(sections, Section{Title: title, Fields: r.IOPerformance.fields()})
	}

	return sections
}

func (c CPU) fields() []Field {
	var l fieldList
	l.str("processor", c.Processor)
	l.str("architecture", c.Architecture)
	l.num("logical_cpus", c.LogicalCPUs)
	l.num("physical_cores", c.PhysicalCores)
	l.str("model", c.Model)
	if c.MHz > 0 {
		l = append(l, Field{Key: "mhz", Value: c.MHz})
	}
	l.num("performance_cores", c.PerformanceCores)
	l.num("efficiency_cores", c.EfficiencyCores)
	l.float("load_avg_1", c.LoadAvg1)
	l.float("load_avg_5", c.LoadAvg5)
	l.float("load_avg_15", c.LoadAvg15)
	return l
}

func (m Memory) fields() []Field {
	var l fieldList
	l.float("total_gb", m.TotalGB)
	l.float("available_gb", m.AvailableGB)
	l.float("used_percent", m.UsedPercent)
	l.float("swap_total_gb", m.SwapTotalGB)
	l.float("swap_used_percent", m.SwapUsedPercent)
	return l
}

func (f FilesystemPath) fields() []Field {
	var l fieldList
	l.str("path", f.Path)
	l.str("type", f.Type)
	l.str("mount_type", f.MountType)
	l.str("mount_point", f.MountPoint)
	l.str("device", f.Device)
	l.str("drive_type", f.DriveType)
	l.float("total_gb", f.TotalGB)
	l.float("free_gb", f.FreeGB)
	l.float("used_percent", f.UsedPercent)
	return l
}

func (g GPU) fields() []Field {
	var l fieldList
	l.str("name", g.Name)
	l.float("util_percent", g.UtilPercent)
	l.float("mem_total_mb", g.MemTotalMB)
	l.float("mem_used_mb", g.MemUsedMB)
	l.float("temp_c", g.TempC)
	return l
}

func (p IOPerformance) fields() []Field {
	var l fieldList
	l.float("write_speed_mb_s", p.WriteSpeedMBs)
	l.float("read_speed_mb_s", p.ReadSpeedMBs)
	if p.TestSizeMB > 0 {
		l = append(l, Field{Key: "test_size_mb", Value: p.TestSizeMB})
	}
	l.str("error", p.Error)
	return l
}

func (r *Report) filesystemGroups() []Group {
	names := make([]string, 0, len(r.Filesystem))
	for name := range r.Filesystem {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Fields: r.Filesystem[name].fields()})
	}
	return groups
}
