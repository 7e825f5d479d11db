package io

import (
	"encoding/json"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

type project struct {
	Name  string `json:"name"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Position position        `json:"position"`
	Data     json.RawMessage `json:"data"`
}

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

type port struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type passData struct {
	Name         string                   `json:"name"`
	VS           string                   `json:"vs,omitempty"`
	FS           string                   `json:"fs,omitempty"`
	InputPorts   []port                   `json:"inputPorts"`
	TexturePorts []port                   `json:"texturePorts"`
	Uniforms     map[string]graph.Uniform `json:"uniforms"`
	Output       string                   `json:"output"`
	BaseColor    *[4]float64              `json:"baseColor,omitempty"`
	Static       bool                     `json:"isStatic,omitempty"`
	ThemeColor   string                   `json:"themeColor,omitempty"`
}

type textureData struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Output     string `json:"output"`
	ThemeColor string `json:"themeColor,omitempty"`
}

type particleData struct {
	Name       string `json:"name"`
	Output     string `json:"output"`
	ThemeColor string `json:"themeColor,omitempty"`
}

func encodePayload(p graph.Payload) any {
	switch d := p.(type) {
	case graph.PassData:
		return passData{
			Name:         d.Name,
			VS:           d.VS,
			FS:           d.FS,
			InputPorts:   toPorts(d.InputPorts),
			TexturePorts: toPorts(d.TexturePorts),
			Uniforms:     d.Uniforms,
			Output:       d.Output,
			BaseColor:    d.BaseColor,
			Static:       d.Static,
			ThemeColor:   d.ThemeColor,
		}
	case graph.TextureData:
		return textureData(d)
	case graph.ParticleData:
		return particleData(d)
	}
	return nil
}

func decodePayload(kind graph.Kind, raw json.RawMessage) (graph.Payload, error) {
	switch kind {
	case graph.KindTexture:
		var d textureData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		if d.Output == "" {
			d.Output = d.Path
		}
		return graph.TextureData(d), nil
	case graph.KindParticle:
		var d particleData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return graph.ParticleData(d), nil
	default:
		var d passData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		uniforms := d.Uniforms
		if uniforms == nil {
			uniforms = map[string]graph.Uniform{}
		}
		return graph.PassData{
			Name:         d.Name,
			VS:           d.VS,
			FS:           d.FS,
			InputPorts:   fromPorts(d.InputPorts),
			TexturePorts: fromPorts(d.TexturePorts),
			Uniforms:     uniforms,
			Output:       d.Output,
			BaseColor:    d.BaseColor,
			Static:       d.Static,
			ThemeColor:   d.ThemeColor,
		}, nil
	}
}

func toPorts(ps []graph.Port) []port {
	out := make([]port, len(ps))
	for i, p := range ps {
		out[i] = port(p)
	}
	return out
}

func fromPorts(ps []port) []graph.Port {
	if len(ps) == 0 {
		return nil
	}
	out := make([]graph.Port, len(ps))
	for i, p := range ps {
		out[i] = graph.Port(p)
	}
	return out
}
