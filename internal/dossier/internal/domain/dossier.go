package domain

// JobStatus 档案生成任务状态
type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

type Job struct {
	Id       int64
	ClaimId  int64
	Status   JobStatus
	Attempts int64
}

// Dossier 一次 AI 研判的产出
type Dossier struct {
	// Verdict 只有 YES 或 NO
	Verdict string
	// Confidence 置信度，(0, 1]
	Confidence float64
	Summary    string
}
