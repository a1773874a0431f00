// ABOUTME: Test doubles shared by the auth package tests
// ABOUTME: Fake provider, profile writer, notifier, and navigator that record calls

package auth

import (
	"context"
	"sync"
)

type fakeProvider struct {
	mu         sync.Mutex
	createErr  error
	signInErr  error
	signOutErr error
	uid        string
	calls      []string
}

func (p *fakeProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	p.record("create:" + email)
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.uid, nil
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	p.record("signin:" + email)
	if p.signInErr != nil {
		return "", p.signInErr
	}
	return p.uid, nil
}

func (p *fakeProvider) SignOut(ctx context.Context) error {
	p.record("signout")
	return p.signOutErr
}

func (p *fakeProvider) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

func (p *fakeProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

type fakeProfiles struct {
	mu       sync.Mutex
	err      error
	profiles map[string]Profile
}

func (f *fakeProfiles) WriteProfile(ctx context.Context, uid string, profile Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.profiles == nil {
		f.profiles = make(map[string]Profile)
	}
	f.profiles[uid] = profile
	return nil
}

type shownBanner struct {
	Message string
	Target  string
	IsError bool
}

type fakeNotifier struct {
	mu    sync.Mutex
	shown []shownBanner
}

func (n *fakeNotifier) Show(message, target string, isError bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, shownBanner{Message: message, Target: target, IsError: isError})
}

func (n *fakeNotifier) Last() shownBanner {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.shown) == 0 {
		return shownBanner{}
	}
	return n.shown[len(n.shown)-1]
}

type fakeNavigator struct {
	mu      sync.Mutex
	visited []string
}

func (n *fakeNavigator) Navigate(destination string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visited = append(n.visited, destination)
}

func (n *fakeNavigator) Visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visited...)
}
