package http

type createReq struct {
	ArtifactID1 int64   `json:"artifact_id_1"`
	ArtifactID2 int64   `json:"artifact_id_2"`
	Kind        string  `json:"kind"`
	Score       float64 `json:"score"`
	Note        string  `json:"note"`
}

type connectionResp struct {
	ArtifactID int64   `json:"artifact_id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
}
