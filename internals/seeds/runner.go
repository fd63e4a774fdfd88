package seeds

import (
	"context"
	"log"

	"notulensi_backend/internals/features/rapat/meetings/repository"
)

// RunAllSeeds mengisi satu rapat contoh kalau Data_Rapat masih kosong.
// Dipakai untuk demo / STORE_DRIVER=memory (env SEED_DEMO=true).
func RunAllSeeds(ctx context.Context, repo *repository.Repository) error {
	list, err := repo.ListMeetings(ctx)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		log.Printf("[SEED] Data_Rapat sudah berisi %d rapat, seed dilewati", len(list))
		return nil
	}

	m, err := repo.CreateMeeting(ctx, repository.MeetingInput{
		Title:    "Rapat Koordinasi Awal Semester",
		Location: "Ruang Guru",
		Chair:    "Hendra Gunawan, M.Pd",
	})
	if err != nil {
		return err
	}
	log.Printf("[SEED] ✅ rapat contoh %s dibuat", m.MeetingID)
	return nil
}
