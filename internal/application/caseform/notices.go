package caseform

// Notice is a dialog shown to the user
type Notice struct {
	Title string
	Text  string
}

// Prompt is a yes/no question
type Prompt struct {
	Title   string
	Confirm string
	Cancel  string
}

// Navigation targets
const (
	PathMyCases = "/journal/mycases"
	PathLogin   = "/login"
)

// Action labels
const (
	LabelSaveDraft = "Simpan Draft"
	LabelSubmit    = "Edit & Ajukan Kasus"
)

var (
	incompleteNotice = Notice{
		Title: "Input Tidak Lengkap",
		Text:  "Pastikan semua input wajib (Judul Kasus, Ringkasan Kasus, dan Kategori) sudah diisi.",
	}
	draftSavedNotice = Notice{
		Title: "Draft Berhasil Disimpan!",
		Text:  "Draft kasus Anda berhasil disimpan, Anda bisa melanjutkan pengajuan nanti.",
	}
	submittedNotice = Notice{
		Title: "Kasus Telah Diajukan!",
		Text:  "Kasus Anda telah diajukan untuk ditinjau.",
	}
	failureNotice = Notice{
		Title: "Terjadi Kesalahan",
		Text:  "Terdapat masalah dalam menyimpan atau mengajukan kasus. Silakan coba lagi.",
	}
	submitPrompt = Prompt{
		Title:   "Apakah Anda ingin mengajukan kasus ini?",
		Confirm: "Ya, Ajukan",
		Cancel:  "Batal",
	}
)
