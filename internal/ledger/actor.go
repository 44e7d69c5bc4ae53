package ledger

// Actor: işlemi yapan kullanıcı kimliği. Oturum durumu global tutulmaz;
// her ledger/fiş çağrısına açıkça parametre olarak geçilir ve işlem
// geçmişine denormalize yazılır.
type Actor struct {
	UserID   uint
	UserName string
}
