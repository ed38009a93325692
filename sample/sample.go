// Package sample writes the annotated example input file for new runs.
package sample

import (
	"fmt"
	"os"

	"github.com/canbuoy/thor/logging"
)

// DefaultFilename is used when no path is given.
const DefaultFilename = "sample.odin"

// Template is the sample input file.
const Template = `# THIS FILE WAS GENERATED BY ODIN -- sample input file

runname: testrun                 # used to name directories, etc.


# RUN SETTINGS
predict:   boltzmann             # {single, boltzmann, kinetic} ensembles
sampling:  md                    # either {md, mc} for dynamics, Monte Carlo
prior:     minimal               # could be amber99sb-ildn, charm22, etc.
solvent:   none                  # grand cannonical solvent to employ
outputdir: ~/testrun             # where stuff gets written -- could be GB.


# EXPERIMENTS
experiment: LCLS_run_1           # a name identifying the data
    - dir:  ~/testrun/lcls       # should contain pre-processed data files
    - type: scattering           # {scattering, chemshift} are in now

experiment: NMR_HSQC_1
    - dir:  ~/testrun/chemshifts
    - type: chemshift


# RESOURCES
runmode: cluster                 # one of {local, cluster}
nodes:   4                       # how many nodes to call for
gpn:     1                       # gpus per node
REMD:    True                    # use REMD to estimate the lambdas
temps:   [1, 0.5, 0.1, 0.01]     # temps in units of beta, <= nodes*gpn
`

// WriteInput writes Template to path, replacing any existing file.
func WriteInput(path string) error {
	if path == "" {
		path = DefaultFilename
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("write sample input: %w", err)
	}

	logging.Named("sample").Info("wrote sample input", "file", path)
	return nil
}
