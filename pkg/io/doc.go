// Package io reads and writes the two JSON documents of the editor.
//
// # Pipeline Format
//
// The pipeline description consumed by the renderer:
//
//	{
//	    "postProcess": {
//	        "name": "bloom",
//	        "rtPool": ["inScreen", "outScreen", "rt_3"],
//	        "hint": "拓扑序",
//	        "postProcessGraph": [
//	            {
//	                "name": "Blur",
//	                "vs": "assets/shaders/postprocess/default.vs",
//	                "fs": "assets/shaders/postprocess/blur.fs",
//	                "inputs": [["u_tex0", "inScreen"]],
//	                "output": "rt_3",
//	                "uniforms": {"u_radius": 4, "u_dir": [1, 0]}
//	            }
//	        ]
//	    }
//	}
//
// Use [ReadJSON] / [ImportJSON] to decode it into a [pipeline.Config] and
// [WriteJSON] / [ExportJSON] to encode one. Output is indented with four
// spaces; [ExportFileName] gives the conventional file name for a pipeline.
//
// # Project Format
//
// The editor's own save file keeps everything the pipeline format drops:
// node IDs, kinds, canvas positions, port IDs, theme colors and edges.
//
//	{
//	    "name": "bloom",
//	    "nodes": [
//	        {"id": "START_NODE", "kind": "input", "position": {"x": -200, "y": 200}, "data": {...}},
//	        {"id": "1", "kind": "pass", "position": {"x": 340, "y": 220}, "data": {...}}
//	    ],
//	    "edges": [
//	        {"id": "e-START_NODE-out-1-in_2", "source": "START_NODE", "sourceHandle": "out", "target": "1", "targetHandle": "in_2"}
//	    ]
//	}
//
// The shape of data depends on kind. Use [ReadProject] / [LoadProject] and
// [WriteProject] / [SaveProject]. A project round-trips every field of a
// [graph.Graph].
//
// # Errors
//
// Malformed documents yield INVALID_PIPELINE (pipelines) or INVALID_INPUT
// (projects) errors from package errors; missing files yield FILE_NOT_FOUND.
package io
