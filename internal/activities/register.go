package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ListDocumentsActivity)
	w.RegisterActivity(a.ChargeCreditsActivity)
	w.RegisterActivity(a.SetRunMessageActivity)
	w.RegisterActivity(a.RenderPageActivity)
	w.RegisterActivity(a.AnalyzeTablesActivity)
	w.RegisterActivity(a.EmitTablesActivity)
	w.RegisterActivity(a.ArchiveOutputsActivity)
	w.RegisterActivity(a.DeliverArchiveActivity)
	w.RegisterActivity(a.WriteRunManifestActivity)
	w.RegisterActivity(a.UpsertRunActivity)
	w.RegisterActivity(a.UpdateRunStatusActivity)
	w.RegisterActivity(a.RecordChargeActivity)
	w.RegisterActivity(a.CompleteRunActivity)
	w.RegisterActivity(a.CleanupRunDirActivity)
}
