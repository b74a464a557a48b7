package registry

// resetInstance сбрасывает глобальный реестр между тестами.
func resetInstance() {
	instanceMu.Lock()
	instance = nil
	instanceMu.Unlock()
}
