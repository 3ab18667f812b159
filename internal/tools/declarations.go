package tools

// Canonical tool-call names. The dispatcher switches exhaustively over this
// set; the gateway drops calls naming anything else.
const (
	NameAddSchedule          = "addSchedule"
	NameAddGrade             = "addGrade"
	NameAddBehaviorRecord    = "addBehaviorRecord"
	NameAddActivity          = "addActivity"
	NameAddReminder          = "addReminder"
	NameGenerateParentReport = "generateParentReport"
	NameSyncContacts         = "syncContacts"
)

// Declarations returns the full, fixed tool set advertised to the model.
// Descriptions are in Indonesian to match the assistant persona; the model
// keys its extraction off them.
func Declarations() []Tool {
	return []Tool{
		NewFunctionTool(
			NameAddSchedule,
			"Menambahkan jadwal mata pelajaran baru.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"day":       {Type: "string"},
					"subject":   {Type: "string"},
					"time":      {Type: "string"},
					"className": {Type: "string"},
				},
				Required: []string{"day", "subject", "time", "className"},
			},
		),
		NewFunctionTool(
			NameAddGrade,
			"Menambahkan nilai akademik siswa.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"studentName": {Type: "string"},
					"subject":     {Type: "string"},
					"score":       {Type: "number"},
				},
				Required: []string{"studentName", "subject", "score"},
			},
		),
		NewFunctionTool(
			NameAddBehaviorRecord,
			"Menambahkan rekap nilai kelakuan/sikap siswa.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"studentName": {Type: "string"},
					"grade":       {Type: "string", Enum: []string{"A", "B", "C", "D"}, Description: "Predikat nilai kelakuan"},
					"description": {Type: "string", Description: "Catatan perilaku spesifik"},
					"date":        {Type: "string", Description: "Tanggal pencatatan"},
				},
				Required: []string{"studentName", "grade", "description", "date"},
			},
		),
		NewFunctionTool(
			NameAddActivity,
			"Mencatat kegiatan siswa berdasarkan kategori.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"studentName": {Type: "string"},
					"description": {Type: "string"},
					"category":    {Type: "string", Enum: []string{"Akademik", "Perilaku", "Ekstrakurikuler"}},
					"date":        {Type: "string"},
				},
				Required: []string{"studentName", "description", "category", "date"},
			},
		),
		NewFunctionTool(
			NameAddReminder,
			"Menambahkan pengingat yang akan disinkronkan ke Google Calendar dan Google Tasks.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"text":     {Type: "string", Description: "Isi pengingat atau kegiatan"},
					"date":     {Type: "string", Description: "Tanggal dan waktu (ISO atau format deskriptif)"},
					"priority": {Type: "string", Enum: []string{"Rendah", "Sedang", "Tinggi"}},
				},
				Required: []string{"text", "date", "priority"},
			},
		),
		NewFunctionTool(
			NameGenerateParentReport,
			"Menyusun laporan perkembangan siswa untuk dikirim ke orang tua.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"studentName": {Type: "string"},
					"phoneNumber": {Type: "string"},
					"content":     {Type: "string"},
				},
				Required: []string{"studentName", "phoneNumber", "content"},
			},
		),
		NewFunctionTool(
			NameSyncContacts,
			"Menyimpan kontak orang tua siswa ke buku telepon digital.",
			JSONSchema{
				Type: "object",
				Properties: map[string]*JSONSchema{
					"studentName": {Type: "string"},
					"parentName":  {Type: "string"},
					"phoneNumber": {Type: "string"},
					"className":   {Type: "string"},
				},
				Required: []string{"studentName", "parentName", "phoneNumber", "className"},
			},
		),
	}
}

// IsKnown reports whether name belongs to the advertised tool set.
func IsKnown(name string) bool {
	switch name {
	case NameAddSchedule, NameAddGrade, NameAddBehaviorRecord, NameAddActivity,
		NameAddReminder, NameGenerateParentReport, NameSyncContacts:
		return true
	}
	return false
}
