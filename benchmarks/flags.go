package benchmarks

import (
	"path"

	"github.com/zeu5/impact-eval/policies"
	"github.com/zeu5/impact-eval/roadnet"
	"github.com/zeu5/impact-eval/util"
)

type Flags struct {
	Environment      string
	EnvironmentFile  string
	Policy           string
	PrintSegmentInfo bool
	Seed             uint64
	SavePath         string
	Debug            bool
	OutputFlags
	CompareFlags
	ServeFlags
}

type OutputFlags struct {
	Live        bool
	RecordSteps bool
	RedisAddr   string
	RedisKey    string
	DBPath      string
}

type CompareFlags struct {
	Policies []string
	Plot     bool
}

type ServeFlags struct {
	Addr string
}

func DefaultFlags() *Flags {
	return &Flags{
		Environment:      roadnet.DefaultPreset,
		EnvironmentFile:  "",
		Policy:           policies.Heuristic,
		PrintSegmentInfo: false,
		Seed:             42,
		SavePath:         "results",
		Debug:            false,
		OutputFlags: OutputFlags{
			Live:        false,
			RecordSteps: false,
			RedisAddr:   "",
			RedisKey:    "impact-eval",
			DBPath:      "",
		},
		CompareFlags: CompareFlags{
			Policies: policies.Names(),
			Plot:     false,
		},
		ServeFlags: ServeFlags{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Record saves the flags as config.json under the save path
func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
