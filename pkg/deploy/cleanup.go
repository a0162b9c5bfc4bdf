package deploy

import (
	"os"
)

// Cleanup removes the transient runtime setup script if present. Failures
// here are logged and absorbed; they never change the outcome of an
// otherwise-successful run.
func (p *Pipeline) Cleanup() {
	scriptPath := p.setupScriptPath()

	if _, err := os.Stat(scriptPath); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Errorf("Cleanup failed: %v", err)
			return
		}
		p.logger.Infof("Cleanup completed")
		return
	}

	if err := os.Remove(scriptPath); err != nil {
		p.logger.Errorf("Cleanup failed: %v", err)
		return
	}

	p.logger.Infof("Cleanup completed")
}
