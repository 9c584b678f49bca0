package export

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/rocketsim/internal/dynamics"
)

// TrajectoryHeader is the column layout of a trajectory CSV.
var TrajectoryHeader = []string{
	"time",
	"pos_x", "pos_y", "pos_z",
	"vel_x", "vel_y", "vel_z",
	"quat_w", "quat_x", "quat_y", "quat_z",
	"omega_x", "omega_y", "omega_z",
	"mass", "stage_idx", "pitch_deg", "alpha_deg",
}

// WriteTrajectory writes the trajectory as CSV, one row per sample.
func WriteTrajectory(w io.Writer, trajectory []dynamics.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrajectoryHeader); err != nil {
		return err
	}
	for _, s := range trajectory {
		row := []string{
			f4(s.Time),
			f4(s.Pos.X), f4(s.Pos.Y), f4(s.Pos.Z),
			f4(s.Vel.X), f4(s.Vel.Y), f4(s.Vel.Z),
			f6(s.Att.Real), f6(s.Att.Imag), f6(s.Att.Jmag), f6(s.Att.Kmag),
			f6(s.Omega.X), f6(s.Omega.Y), f6(s.Omega.Z),
			f4(s.Mass),
			strconv.Itoa(s.StageIdx),
			f2(s.Pitch() * 180 / math.Pi),
			f2(s.Alpha() * 180 / math.Pi),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryFile writes the trajectory CSV to path.
func WriteTrajectoryFile(path string, trajectory []dynamics.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteTrajectory(f, trajectory); err != nil {
		return err
	}
	return f.Close()
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
func f6(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
