package registry

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyInstalled = errors.New("plant registry already installed")
	ErrNotInstalled     = errors.New("plant registry not installed")
	ErrNilRegistry      = errors.New("plant registry is nil")
)

var (
	instanceMu sync.RWMutex
	instance   *Registry
)

// Install делает r реестром процесса. Установить реестр можно ровно один раз:
// повторный вызов возвращает ErrAlreadyInstalled и не меняет текущий экземпляр.
func Install(r *Registry) error {
	if r == nil {
		return ErrNilRegistry
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		return ErrAlreadyInstalled
	}
	instance = r
	return nil
}

// MustInstall как Install, но паникует при повторной установке.
func MustInstall(r *Registry) {
	if err := Install(r); err != nil {
		panic(err)
	}
}

// Instance возвращает установленный реестр процесса.
func Instance() (*Registry, error) {
	instanceMu.RLock()
	defer instanceMu.RUnlock()

	if instance == nil {
		return nil, ErrNotInstalled
	}
	return instance, nil
}
