package config

type WorkerKeyStruct struct {
	PersistResultsQueue    string
	PersistGameScoresQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistResultsQueue:    "persist_results_queue",
	PersistGameScoresQueue: "persist_game_scores_queue",
}
