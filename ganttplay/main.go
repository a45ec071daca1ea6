// Ganttplay plays CPU scheduling timelines.
package main

import "github.com/Pallavi2687/cpu-scheduler-frontend/ganttplay/cmd"

func main() {
	cmd.Execute()
}
