package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskEnergySnapshot = "valorisation.energy_snapshot"

// EnergySnapshotPayload identifies which portfolio slice to snapshot. An
// empty status means all projects.
type EnergySnapshotPayload struct {
	Status string `json:"status"`
}

func NewEnergySnapshotTask(payload EnergySnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEnergySnapshot, data), nil
}

func ParseEnergySnapshotPayload(task *asynq.Task) (EnergySnapshotPayload, error) {
	var payload EnergySnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EnergySnapshotPayload{}, err
	}
	return payload, nil
}
